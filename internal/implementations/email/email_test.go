package email

import (
	"accountd/internal/core/domain/user"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetBody(t *testing.T) {
	baseURL, err := url.Parse("https://app.example.com/reset-password")
	require.NoError(t, err)

	body := passwordResetBody(*baseURL, user.ResetToken("abc123"))
	require.Equal(
		t,
		"Click here to reset your password: https://app.example.com/reset-password?token=abc123",
		body,
	)
}

func TestResetLinkEscapesToken(t *testing.T) {
	baseURL, err := url.Parse("https://app.example.com/reset-password")
	require.NoError(t, err)

	link := resetLink(*baseURL, user.ResetToken("a+b/c"))
	require.Equal(t, "https://app.example.com/reset-password?token=a%2Bb%2Fc", link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "a+b/c", parsed.Query().Get("token"))
}
