package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
	"github.com/okrhub/okrhub-lambda/internal/auth"
	"github.com/okrhub/okrhub-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, tokens, err := h.service.SignUp(r.Context(), dto)
	if err != nil {
		var verr *apperror.ValidationError
		switch {
		case errors.As(err, &verr):
			config.JSONError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, ErrEmailTaken):
			config.JSONError(w, http.StatusConflict, "email already registered", nil)
		default:
			log.WithError(err).Error("Failed to sign up user")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, tokens, err := h.service.SignIn(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to sign in user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, tokens, err := h.service.GoogleLogin(r.Context(), dto.Code)
	if err != nil {
		var verr *apperror.ValidationError
		switch {
		case errors.As(err, &verr):
			config.JSONError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		default:
			log.WithError(err).Error("Failed Google login")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	cookie, err := r.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tokens, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to refresh session")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookies(w, tokens.AccessToken, tokens.RefreshToken)
	config.JSON(w, http.StatusOK, map[string]string{"message": "session refreshed"})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), dto.Email); err != nil {
		log.WithError(err).Error("Failed to request password reset")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Same reply whether or not the address is registered.
	config.JSON(w, http.StatusAccepted, map[string]string{
		"message": "if the address is registered, a reset link has been sent",
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), dto); err != nil {
		var verr *apperror.ValidationError
		switch {
		case errors.As(err, &verr):
			config.JSONError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, ErrResetTokenInvalid):
			http.Error(w, "reset token invalid or expired", http.StatusBadRequest)
		default:
			log.WithError(err).Error("Failed to reset password")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, dto); err != nil {
		var verr *apperror.ValidationError
		switch {
		case errors.As(err, &verr):
			config.JSONError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, apperror.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to change password")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load current user")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, response)
}
