package sendpasswordresettoken

import (
	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const EMAIL = "alice@example.com"
const TOKEN = "test-reset-token"

var NOW = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type suite struct {
	log       *logging.FakeLogger
	userRepo  *user.FakeUserRepository
	generator *user.FakeResetTokenGenerator
	sender    *user.FakeResetTokenSender
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{{
		ID:           10001,
		Name:         "Alice",
		Email:        c.NewEmail(EMAIL),
		PasswordHash: "hash",
	}}
	return &suite{
		log:       logging.NewFakeLogger(),
		userRepo:  userRepo,
		generator: user.NewFakeResetTokenGenerator(TOKEN),
		sender:    user.NewFakeResetTokenSender(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.generator, s.sender, time.Hour, func() time.Time { return NOW })
}

func TestTokenIssuedAndSent(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, user.ResetToken(TOKEN), result.Token)
	require.Equal(t, 1, suite.sender.SentCount())

	u, err := suite.userRepo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	require.NoError(t, err)
	require.True(t, u.ResetToken.IsPresent)
	require.Equal(t, user.ResetToken(TOKEN), u.ResetToken.Value)
	require.True(t, u.ResetTokenExpiresAt.IsPresent)
	require.Equal(t, NOW.Add(time.Hour), u.ResetTokenExpiresAt.Value)
}

func TestUnknownEmail(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: c.NewEmail("nobody@example.com")})

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
	require.Equal(t, 0, suite.sender.SentCount())
}

func TestSecondTokenOverwritesFirst(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.generator.Sequence = []user.ResetToken{"token-1", "token-2"}
	service := suite.createService()

	// Exercise ---
	first, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	require.NoError(t, err)
	second, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	require.NoError(t, err)

	// Verify ---
	require.NotEqual(t, first.Token, second.Token)
	_, err = suite.userRepo.GetByResetToken(context.Background(), first.Token)
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
	u, err := suite.userRepo.GetByResetToken(context.Background(), second.Token)
	require.NoError(t, err)
	require.Equal(t, c.Email(EMAIL), u.Email)
}

func TestSendFailureKeepsTokenValid(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.sender.ReturnError = true
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	// Verify ---
	require.ErrorIs(t, err, user.ErrNotificationNotSent)
	require.Equal(t, user.ResetToken(TOKEN), result.Token)
	u, err := suite.userRepo.GetByResetToken(context.Background(), user.ResetToken(TOKEN))
	require.NoError(t, err)
	require.True(t, u.HasActiveResetToken(NOW))
}

func TestConcurrentIssueLeavesOneActiveToken(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.generator.Sequence = []user.ResetToken{
		"token-a", "token-b", "token-c", "token-d", "token-e",
	}
	service := suite.createService()

	// Exercise ---
	var wg sync.WaitGroup
	results := make([]Result, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(ix int) {
			defer wg.Done()
			result, err := service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
			require.NoError(t, err)
			results[ix] = result
		}(i)
	}
	wg.Wait()

	// Verify ---
	active := 0
	for _, result := range results {
		_, err := suite.userRepo.GetByResetToken(context.Background(), result.Token)
		if err == nil {
			active++
		}
	}
	require.Equal(t, 1, active)
}
