package config

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseDSN string `env:"DATABASE_DSN"`
	CryptoKey   string `env:"CRYPTO_KEY"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"OKRHub <no-reply@okrhub.app>"`
	AppBaseURL   string `env:"APP_BASE_URL" envDefault:"https://okrhub.app"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var Env Config

func Init() {
	if err := env.Parse(&Env); err != nil {
		logrus.Fatalf("failed to parse environment: %v", err)
	}

	level, err := logrus.ParseLevel(Env.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

// WithContext returns a request-scoped logger carrying the chi request id.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logrus.WithError(err).Error("Failed to encode response body")
		}
	}
}

func JSONError(w http.ResponseWriter, status int, message string, fields []string) {
	body := map[string]any{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	JSON(w, status, body)
}
