package user

import (
	c "accountd/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID                   ID
	DoNameUpdate         bool
	Name                 string
	DoEmailUpdate        bool
	Email                c.Email
	DoPasswordHashUpdate bool
	PasswordHash         PasswordHash
}

type SetResetTokenInput struct {
	UserID    ID
	Token     ResetToken
	ExpiresAt time.Time
}

// ResetPasswordInput clears the reset token and sets the new password hash
// in one atomic commit. Token is matched exactly; the update applies only
// if the row still carries that token.
type ResetPasswordInput struct {
	UserID       ID
	Token        ResetToken
	PasswordHash PasswordHash
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByResetToken(ctx context.Context, token ResetToken) (User, error)
	// GetByResetTokenWithLock locks the matched row until the enclosing
	// transaction ends. Must be called within a unit of work.
	GetByResetTokenWithLock(ctx context.Context, token ResetToken) (User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetResetToken(ctx context.Context, input SetResetTokenInput) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	Delete(ctx context.Context, id ID) error
}
