package app

import (
	"accountd/internal/app/deps"
	"accountd/internal/app/services"
	deleteuser "accountd/internal/http/handlers/delete_user"
	getuser "accountd/internal/http/handlers/get_user"
	login "accountd/internal/http/handlers/log_in"
	resetpassword "accountd/internal/http/handlers/reset_password"
	sendpasswordresettoken "accountd/internal/http/handlers/send_password_reset_token"
	signup "accountd/internal/http/handlers/sign_up"
	updateuser "accountd/internal/http/handlers/update_user"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	usersRouter := chi.NewRouter()
	usersRouter.Method(http.MethodPost, "/", signup.New(s.SignUp))
	usersRouter.Method(http.MethodGet, "/{userID:[0-9]+}", getuser.New(s.GetUser))
	usersRouter.Method(http.MethodPut, "/{userID:[0-9]+}", updateuser.New(s.UpdateUser))
	usersRouter.Method(http.MethodDelete, "/{userID:[0-9]+}", deleteuser.New(s.DeleteUser))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/users", usersRouter)
	router.Method(http.MethodPost, "/login", login.New(s.LogIn))
	router.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	router.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
