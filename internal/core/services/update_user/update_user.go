package updateuser

import (
	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/logging"
	"accountd/internal/core/domain/user"
	"accountd/internal/core/services"
	"context"
	"errors"
)

// Input carries partial updates; absent fields keep their stored values.
// A present password is hashed before it reaches the store.
type Input struct {
	UserID   user.ID
	Name     c.Optional[string]
	Email    c.Optional[c.Email]
	Password c.Optional[user.RawPassword]
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	repoInput := user.UpdateUserInput{
		ID:            input.UserID,
		DoNameUpdate:  input.Name.IsPresent,
		Name:          input.Name.Value,
		DoEmailUpdate: input.Email.IsPresent,
		Email:         input.Email.Value,
	}
	if input.Password.IsPresent {
		passwordHash, err := s.passwordHasher.HashPassword(input.Password.Value)
		if err != nil {
			s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
			return result, err
		}
		repoInput.DoPasswordHashUpdate = true
		repoInput.PasswordHash = passwordHash
	}

	updatedUser, err := s.userRepository.Update(ctx, repoInput)
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, user.ErrUserDoesNotExist) ||
		errors.Is(err, user.ErrEmailAlreadyExists) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("userID", updatedUser.ID),
	)
	return Result{User: updatedUser}, nil
}
