package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
	"github.com/okrhub/okrhub-lambda/internal/auth"
	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/notifier"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = time.Hour

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type Service interface {
	SignUp(ctx context.Context, dto SignUpDTO) (*UserResponse, *TokenPair, error)
	SignIn(ctx context.Context, dto SignInDTO) (*UserResponse, *TokenPair, error)
	GoogleLogin(ctx context.Context, code string) (*UserResponse, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context, userID string) (*UserResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, dto ResetPasswordDTO) error
	ChangePassword(ctx context.Context, userID string, dto ChangePasswordDTO) error
}

type service struct {
	repo        UserRepository
	mailer      notifier.Mailer
	oauthConfig *oauth2.Config
}

func NewService(repo UserRepository, mailer notifier.Mailer, oauthConfig *oauth2.Config) Service {
	return &service{
		repo:        repo,
		mailer:      mailer,
		oauthConfig: oauthConfig,
	}
}

func (s *service) SignUp(ctx context.Context, dto SignUpDTO) (*UserResponse, *TokenPair, error) {
	log := config.WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if err := validateCredentials(email, dto.Password); err != nil {
		return nil, nil, err
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, nil, apperror.Store("get user", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
	}

	if err := s.repo.CreateWithProfile(&u, dto.FirstName, dto.LastName); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, nil, apperror.Store("create user", err)
	}

	tokens, err := s.issueTokens(&u)
	if err != nil {
		return nil, nil, err
	}

	log.Infof("User %s signed up", u.ID)
	return s.toResponse(&u, dto.FirstName, dto.LastName), tokens, nil
}

func (s *service) SignIn(ctx context.Context, dto SignInDTO) (*UserResponse, *TokenPair, error) {
	u, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		return nil, nil, apperror.Store("get user", err)
	}
	if u == nil || u.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	profile, _ := s.repo.GetProfileByUserID(u.ID.String())
	return s.responseWithProfile(u, profile), tokens, nil
}

func (s *service) GoogleLogin(ctx context.Context, code string) (*UserResponse, *TokenPair, error) {
	log := config.WithContext(ctx)

	if code == "" {
		return nil, nil, apperror.NewValidation("code")
	}

	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, nil, ErrInvalidCredentials
	}

	info, err := s.fetchGoogleUserInfo(ctx, oauthToken)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, nil, err
	}

	u, err := s.repo.GetByEmail(strings.ToLower(info.Email))
	if err != nil {
		return nil, nil, apperror.Store("get user", err)
	}
	if u == nil {
		u = &User{
			Email: strings.ToLower(info.Email),
			Role:  "user",
		}
		if err := s.repo.CreateWithProfile(u, info.GivenName, info.FamilyName); err != nil {
			return nil, nil, apperror.Store("create user", err)
		}
		log.Infof("Provisioned user %s from Google sign-in", u.ID)
	}

	if err := s.storeGoogleTokens(u, oauthToken); err != nil {
		log.WithError(err).Warn("Failed to store Google tokens")
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	profile, _ := s.repo.GetProfileByUserID(u.ID.String())
	return s.responseWithProfile(u, profile), tokens, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, apperror.Store("get user", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *service) Me(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, apperror.Store("get user", err)
	}
	if u == nil {
		return nil, apperror.ErrNotFound
	}

	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		return nil, apperror.Store("get profile", err)
	}
	return s.responseWithProfile(u, profile), nil
}

// RequestPasswordReset replies identically whether or not the email exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return apperror.Store("get user", err)
	}
	if u == nil {
		log.Infof("Password reset requested for unknown email")
		return nil
	}

	token, hash, err := newResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	u.ResetTokenHash = hash
	u.ResetTokenExpiresAt = &expiry
	if err := s.repo.Update(u); err != nil {
		return apperror.Store("update user", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", config.Env.AppBaseURL, token)
	html := fmt.Sprintf(
		"<p>A password reset was requested for your OKRHub account.</p><p><a href=%q>Reset your password</a> (valid for 1 hour).</p>",
		link,
	)
	if err := s.mailer.Send(ctx, u.Email, "Reset your OKRHub password", html); err != nil {
		log.WithError(err).Error("Failed to send password reset email")
		return err
	}

	return nil
}

func (s *service) ResetPassword(ctx context.Context, dto ResetPasswordDTO) error {
	if err := validatePassword(dto.NewPassword); err != nil {
		return err
	}

	u, err := s.repo.GetByResetTokenHash(hashResetToken(dto.Token))
	if err != nil {
		return apperror.Store("get user", err)
	}
	if u == nil || u.ResetTokenExpiresAt == nil || time.Now().After(*u.ResetTokenExpiresAt) {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	if err := s.repo.Update(u); err != nil {
		return apperror.Store("update user", err)
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, dto ChangePasswordDTO) error {
	if err := validatePassword(dto.NewPassword); err != nil {
		return err
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return apperror.Store("get user", err)
	}
	if u == nil {
		return apperror.ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	if err := s.repo.Update(u); err != nil {
		return apperror.Store("update user", err)
	}
	return nil
}

func (s *service) storeGoogleTokens(u *User, token *oauth2.Token) error {
	access, err := config.Encrypt(token.AccessToken)
	if err != nil {
		return err
	}
	u.EncryptedGoogleAccessToken = access

	if token.RefreshToken != "" {
		refresh, err := config.Encrypt(token.RefreshToken)
		if err != nil {
			return err
		}
		u.EncryptedGoogleRefreshToken = refresh
	}

	return s.repo.Update(u)
}

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (s *service) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo has no email")
	}
	return &info, nil
}

func (s *service) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), u.Role, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) toResponse(u *User, firstName, lastName string) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: firstName,
		LastName:  lastName,
	}
}

func (s *service) responseWithProfile(u *User, profile *Profile) *UserResponse {
	resp := &UserResponse{ID: u.ID, Email: u.Email}
	if profile != nil {
		resp.FirstName = profile.FirstName
		resp.LastName = profile.LastName
	}
	return resp
}

func validateCredentials(email, password string) error {
	var fields []string
	if !strings.Contains(email, "@") {
		fields = append(fields, "email")
	}
	if err := validatePassword(password); err != nil {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields...)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperror.NewValidation("password")
	}
	return nil
}

func newResetToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, hashResetToken(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
