package auth

import (
	"net/http"
	"time"

	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func SetSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, sessionCookie(AccessCookieName, accessToken, 15*time.Minute))
	http.SetCookie(w, sessionCookie(RefreshCookieName, refreshToken, 7*24*time.Hour))
}

func ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, expiredCookie(AccessCookieName))
	http.SetCookie(w, expiredCookie(RefreshCookieName))
}

func sessionCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookies(w)

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
