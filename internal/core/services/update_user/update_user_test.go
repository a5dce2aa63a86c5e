package updateuser

import (
	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type suite struct {
	log            *logging.FakeLogger
	userRepository *user.FakeUserRepository
	hasher         *user.FakePasswordHasher
}

func setupSuite() *suite {
	return &suite{
		log:            logging.NewFakeLogger(),
		userRepository: user.NewFakeUserRepository(),
		hasher:         user.NewFakePasswordHasher(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepository, s.hasher)
}

func (s *suite) createUser(t *testing.T, name string, email string, password string) user.User {
	t.Helper()
	passwordHash, err := s.hasher.HashPassword(user.RawPassword(password))
	require.NoError(t, err)
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Name:         name,
		Email:        c.NewEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    NOW,
	})
	require.NoError(t, err)
	return u
}

func TestAbsentFieldsKeepStoredValues(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()
	created := suite.createUser(t, "Alice", "alice@example.com", "secret-password")

	// Exercise ---
	result, err := service.Run(context.Background(), Input{
		UserID: created.ID,
		Name:   c.NewOptional("Alice Cooper", true),
	})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", result.User.Name)
	require.Equal(t, created.Email, result.User.Email)
	require.Equal(t, created.PasswordHash, result.User.PasswordHash)
}

func TestPasswordIsHashedBeforeUpdate(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()
	created := suite.createUser(t, "Alice", "alice@example.com", "secret-password")

	// Exercise ---
	result, err := service.Run(context.Background(), Input{
		UserID:   created.ID,
		Password: c.NewOptional(user.RawPassword("new-password"), true),
	})

	// Verify ---
	require.NoError(t, err)
	require.True(t, suite.hasher.ValidatePassword("new-password", result.User.PasswordHash))
	require.False(t, suite.hasher.ValidatePassword("secret-password", result.User.PasswordHash))
}

func TestEmailTakenByAnotherUser(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()
	suite.createUser(t, "Alice", "alice@example.com", "secret-password")
	bob := suite.createUser(t, "Bob", "bob@example.com", "other-password")

	// Exercise ---
	_, err := service.Run(context.Background(), Input{
		UserID: bob.ID,
		Email:  c.NewOptional(c.NewEmail("alice@example.com"), true),
	})

	// Verify ---
	require.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestUserDoesNotExist(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{
		UserID: user.ID(42),
		Name:   c.NewOptional("Nobody", true),
	})

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}
