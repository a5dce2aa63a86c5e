package user

import (
	c "accountd/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeResetTokenGenerator struct {
	Token    ResetToken
	Sequence []ResetToken
	lock     sync.Mutex
}

func NewFakeResetTokenGenerator(token string) *FakeResetTokenGenerator {
	return &FakeResetTokenGenerator{Token: ResetToken(token)}
}

func (g *FakeResetTokenGenerator) GenerateResetToken() ResetToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Sequence) > 0 {
		token := g.Sequence[0]
		g.Sequence = g.Sequence[1:]
		return token
	}
	return g.Token
}

type FakeResetTokenSender struct {
	Sent        []ResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenSender() *FakeResetTokenSender {
	return &FakeResetTokenSender{}
}

func (s *FakeResetTokenSender) SendResetToken(ctx context.Context, user User, token ResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakeResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeUserRepository struct {
	Users       []User
	NextID      ID
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10), NextID: 10000}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:           r.NextID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.NextID++
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByResetToken(ctx context.Context, token ResetToken) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.getByResetToken(token)
}

func (r *FakeUserRepository) GetByResetTokenWithLock(ctx context.Context, token ResetToken) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.getByResetToken(token)
}

func (r *FakeUserRepository) getByResetToken(token ResetToken) (u User, err error) {
	for _, u := range r.Users {
		if u.ResetToken.IsPresent && u.ResetToken.Value == token {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if input.DoEmailUpdate {
			for _, other := range r.Users {
				if other.ID != input.ID && other.Email == input.Email {
					return u, ErrEmailAlreadyExists
				}
			}
			r.Users[ix].Email = input.Email
		}
		if input.DoNameUpdate {
			r.Users[ix].Name = input.Name
		}
		if input.DoPasswordHashUpdate {
			r.Users[ix].PasswordHash = input.PasswordHash
		}
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetResetToken(ctx context.Context, input SetResetTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID != input.UserID && u.ResetToken.IsPresent && u.ResetToken.Value == input.Token {
			return ErrResetTokenAlreadyExists
		}
	}
	for ix, u := range r.Users {
		if u.ID == input.UserID {
			r.Users[ix].ResetToken = c.NewOptional(input.Token, true)
			r.Users[ix].ResetTokenExpiresAt = c.NewOptional(input.ExpiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not reset password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.UserID && u.ResetToken.IsPresent && u.ResetToken.Value == input.Token {
			r.Users[ix].PasswordHash = input.PasswordHash
			r.Users[ix].ResetToken = c.NewOptional(ResetToken(""), false)
			r.Users[ix].ResetTokenExpiresAt = c.NewOptional(time.Time{}, false)
			return nil
		}
	}
	return ErrInvalidResetToken
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}
