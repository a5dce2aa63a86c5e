package sendpasswordresettoken

import (
	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	"context"
	"errors"
	"time"
)

// Token values are unique across all users. Collisions are practically
// impossible with 128-bit tokens, but the store enforces uniqueness anyway,
// so generation is retried a few times before giving up.
const tokenCollisionRetries = 3

type Input struct {
	Email c.Email
}

type Result struct {
	User  user.User
	Token user.ResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.ResetTokenGenerator
	tokenSender    user.ResetTokenSender
	validDuration  time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.ResetTokenGenerator,
	tokenSender user.ResetTokenSender,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if validDuration <= 0 {
		panic("validDuration must be positive")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenSender:    tokenSender,
		validDuration:  validDuration,
		now:            now,
	}
}

// Run issues a new reset token for the account owning the email. Any prior
// token for that account is overwritten, so at most one token is consumable
// at a time. The token is committed before the notification goes out; a send
// failure is reported as ErrNotificationNotSent but does not revoke the token.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("err", err),
		)
		return result, err
	}

	expiresAt := s.now().Add(s.validDuration)
	var token user.ResetToken
	for attempt := 0; ; attempt++ {
		token = s.tokenGenerator.GenerateResetToken()
		err = s.userRepository.SetResetToken(ctx, user.SetResetTokenInput{
			UserID:    u.ID,
			Token:     token,
			ExpiresAt: expiresAt,
		})
		if !errors.Is(err, user.ErrResetTokenAlreadyExists) {
			break
		}
		if attempt == tokenCollisionRetries {
			break
		}
		s.log.Warning(
			ctx,
			"Reset token collision, regenerating.",
			logging.Entry("userID", u.ID),
		)
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not set reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	result = Result{User: u, Token: token}
	if err := s.tokenSender.SendResetToken(ctx, u, token); err != nil {
		// The token is already committed and stays valid; the caller
		// has to know the delivery failed.
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, user.ErrNotificationNotSent
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}
