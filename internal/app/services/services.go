package services

import (
	"accountd/internal/app/deps"
	"accountd/internal/core/services"
	deleteuser "accountd/internal/core/services/delete_user"
	getuser "accountd/internal/core/services/get_user"
	login "accountd/internal/core/services/log_in"
	resetpassword "accountd/internal/core/services/reset_password"
	sendpasswordresettoken "accountd/internal/core/services/send_password_reset_token"
	signup "accountd/internal/core/services/sign_up"
	updateuser "accountd/internal/core/services/update_user"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	GetUser                services.Service[getuser.Input, getuser.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]
	DeleteUser             services.Service[deleteuser.Input, deleteuser.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.GetUser = getuser.New(
		deps.Logger,
		deps.UserRepository,
	)
	s.UpdateUser = updateuser.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.DeleteUser = deleteuser.New(
		deps.Logger,
		deps.UserRepository,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.ResetTokenGenerator,
		deps.ResetTokenSender,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
