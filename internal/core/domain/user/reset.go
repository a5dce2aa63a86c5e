package user

import "context"

// ResetToken is an opaque single-use credential proving control of an
// email address. Masked in logs like password material.
type ResetToken string

func (t ResetToken) String() string {
	return "***"
}

type ResetTokenGenerator interface {
	GenerateResetToken() ResetToken
}

type ResetTokenSender interface {
	SendResetToken(ctx context.Context, user User, token ResetToken) error
}
