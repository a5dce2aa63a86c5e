package user

import (
	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

// FormatDisplayID renders the user-facing account number ("I-10001").
// It is computed on read, never stored.
func FormatDisplayID(id ID) string {
	return fmt.Sprintf("I-%d", id)
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID                  ID
	Name                string
	Email               c.Email
	PasswordHash        PasswordHash
	ResetToken          c.Optional[ResetToken]
	ResetTokenExpiresAt c.Optional[time.Time]
	CreatedAt           time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if u.ResetToken.IsPresent != u.ResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("partial reset token state for user %d", u.ID))
	}
	return nil
}

// HasActiveResetToken reports whether the user carries a reset token that
// is still valid at the given instant. A token is valid strictly before
// its expiry, never at or after it.
func (u *User) HasActiveResetToken(at time.Time) bool {
	if !u.ResetToken.IsPresent || !u.ResetTokenExpiresAt.IsPresent {
		return false
	}
	return at.Before(u.ResetTokenExpiresAt.Value)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
