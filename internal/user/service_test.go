package user_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
	"github.com/okrhub/okrhub-lambda/internal/auth"
	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/user"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "a-long-and-secure-secret-key-for-tests")
	auth.Init()
	config.Env.AppBaseURL = "https://okrhub.test"
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.User
	profiles map[uuid.UUID]*user.Profile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[uuid.UUID]*user.User{},
		profiles: map[uuid.UUID]*user.Profile{},
	}
}

func (r *fakeUserRepo) CreateWithProfile(u *user.User, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	r.profiles[u.ID] = &user.Profile{
		ID:        uuid.New(),
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: firstName,
		LastName:  lastName,
	}
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return r.users[uid], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByResetTokenHash(hash string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == hash {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetProfileByUserID(userID string) (*user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	return r.profiles[uid], nil
}

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

func newTestService() (user.Service, *fakeUserRepo, *fakeMailer) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	return user.NewService(repo, mailer, nil), repo, mailer
}

func TestSignUpProvisionsProfile(t *testing.T) {
	service, repo, _ := newTestService()

	resp, tokens, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email:     "Jamie@Example.com",
		Password:  "correct-horse",
		FirstName: "Jamie",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, "jamie@example.com", resp.Email)
	assert.Equal(t, "Jamie", resp.FirstName)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	stored := repo.users[resp.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	profile := repo.profiles[resp.ID]
	require.NotNil(t, profile, "profile row is provisioned with the user")
	assert.Equal(t, "jamie@example.com", profile.Email)
	assert.Equal(t, "Doe", profile.LastName)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.SignUp(context.Background(), user.SignUpDTO{Email: "jamie@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = service.SignUp(context.Background(), user.SignUpDTO{Email: "jamie@example.com", Password: "other-password"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestSignUpValidation(t *testing.T) {
	service, repo, _ := newTestService()

	_, _, err := service.SignUp(context.Background(), user.SignUpDTO{Email: "not-an-email", Password: "short"})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email", "password"}, verr.Fields)
	assert.Empty(t, repo.users)
}

func TestSignIn(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse", FirstName: "Jamie",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resp, tokens, err := service.SignIn(context.Background(), user.SignInDTO{
			Email: "jamie@example.com", Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "Jamie", resp.FirstName)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := service.SignIn(context.Background(), user.SignInDTO{
			Email: "jamie@example.com", Password: "wrong",
		})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, _, err := service.SignIn(context.Background(), user.SignInDTO{
			Email: "nobody@example.com", Password: "correct-horse",
		})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	service, _, _ := newTestService()

	_, tokens, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	fresh, err := service.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = service.Refresh(context.Background(), "garbage-token")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	service, _, mailer := newTestService()

	_, _, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.RequestPasswordReset(context.Background(), "jamie@example.com"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jamie@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Reset")

	token := tokenFromMail(t, mailer.sent[0].html)

	require.NoError(t, service.ResetPassword(context.Background(), user.ResetPasswordDTO{
		Token:       token,
		NewPassword: "brand-new-password",
	}))

	_, _, err = service.SignIn(context.Background(), user.SignInDTO{
		Email: "jamie@example.com", Password: "brand-new-password",
	})
	require.NoError(t, err)

	// The token is single-use.
	err = service.ResetPassword(context.Background(), user.ResetPasswordDTO{
		Token:       token,
		NewPassword: "yet-another-password",
	})
	assert.ErrorIs(t, err, user.ErrResetTokenInvalid)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	service, _, mailer := newTestService()

	require.NoError(t, service.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, mailer.sent, "unknown addresses get no email and no error")
}

func TestPasswordResetExpiredToken(t *testing.T) {
	service, repo, mailer := newTestService()

	resp, _, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.RequestPasswordReset(context.Background(), "jamie@example.com"))
	token := tokenFromMail(t, mailer.sent[0].html)

	expired := time.Now().Add(-time.Minute)
	repo.users[resp.ID].ResetTokenExpiresAt = &expired

	err = service.ResetPassword(context.Background(), user.ResetPasswordDTO{
		Token:       token,
		NewPassword: "brand-new-password",
	})
	assert.ErrorIs(t, err, user.ErrResetTokenInvalid)
}

func TestChangePassword(t *testing.T) {
	service, _, _ := newTestService()

	resp, _, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), resp.ID.String(), user.ChangePasswordDTO{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	require.NoError(t, service.ChangePassword(context.Background(), resp.ID.String(), user.ChangePasswordDTO{
		CurrentPassword: "correct-horse",
		NewPassword:     "brand-new-password",
	}))

	_, _, err = service.SignIn(context.Background(), user.SignInDTO{
		Email: "jamie@example.com", Password: "brand-new-password",
	})
	require.NoError(t, err)
}

func TestMe(t *testing.T) {
	service, _, _ := newTestService()

	resp, _, err := service.SignUp(context.Background(), user.SignUpDTO{
		Email: "jamie@example.com", Password: "correct-horse", FirstName: "Jamie", LastName: "Doe",
	})
	require.NoError(t, err)

	me, err := service.Me(context.Background(), resp.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", me.Email)
	assert.Equal(t, "Jamie", me.FirstName)
	assert.Equal(t, "Doe", me.LastName)

	_, err = service.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func tokenFromMail(t *testing.T, html string) string {
	t.Helper()
	_, after, found := strings.Cut(html, "token=")
	require.True(t, found, "reset mail should carry a token link")
	token, _, found := strings.Cut(after, `"`)
	require.True(t, found)
	return token
}
