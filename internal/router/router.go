package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okrhub/okrhub-lambda/internal/aisuggest"
	"github.com/okrhub/okrhub-lambda/internal/auth"
	"github.com/okrhub/okrhub-lambda/internal/middlewares"
	"github.com/okrhub/okrhub-lambda/internal/okr"
	"github.com/okrhub/okrhub-lambda/internal/spreadsheet"
	"github.com/okrhub/okrhub-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler        *user.Handler
	OKRHandler         *okr.Handler
	SpreadsheetHandler *spreadsheet.Handler
	AISuggestHandler   *aisuggest.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.UserHandler.SignUp)
		r.Post("/login", cfg.UserHandler.SignIn)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
		r.Post("/forgot-password", cfg.UserHandler.ForgotPassword)
		r.Post("/reset-password", cfg.UserHandler.ResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/okrs", okr.Routes(cfg.OKRHandler))
		r.Mount("/imports", spreadsheet.Routes(cfg.SpreadsheetHandler))
		r.Mount("/suggestions", aisuggest.Routes(cfg.AISuggestHandler))
	})

	return r
}
