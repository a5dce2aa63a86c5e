package email

import (
	"accountd/internal/core/domain/user"
	"fmt"
	"net/url"
)

const passwordResetSubject = "Password Reset"

// resetLink embeds the token as a query parameter on the frontend's
// reset page, e.g. https://app.example.com/reset-password?token=...
func resetLink(baseURL url.URL, token user.ResetToken) string {
	q := baseURL.Query()
	q.Set("token", string(token))
	baseURL.RawQuery = q.Encode()
	return baseURL.String()
}

func passwordResetBody(baseURL url.URL, token user.ResetToken) string {
	return fmt.Sprintf("Click here to reset your password: %s", resetLink(baseURL, token))
}
