package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qzterxm/HealthUp/internal/auth/dto"
	authErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/jwt"
	"github.com/qzterxm/HealthUp/internal/auth/model"
	"github.com/qzterxm/HealthUp/internal/config"
	"go.uber.org/zap"
)

type userRepoStub struct{ users map[uuid.UUID]model.User }

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[uuid.UUID]model.User)}
}

func (u *userRepoStub) CreateUser(ctx context.Context, m model.User) (uuid.UUID, error) {
	for _, v := range u.users {
		if strings.EqualFold(v.Email, m.Email) {
			return uuid.Nil, authErrors.ErrAlreadyExists
		}
	}
	u.users[m.ID] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	for _, v := range u.users {
		if strings.EqualFold(v.Email, email) {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	v, ok := u.users[id]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	v, ok := u.users[id]
	if !ok {
		return authErrors.ErrNotFound
	}
	v.PasswordHash = hash
	u.users[id] = v
	return nil
}

func testValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool { return true })
	return v
}

func testJWTConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		AccessTokenTTL: time.Minute,
		Issuer:         "healthup",
		Audience:       "healthup-clients",
	}
}

func newAuthSvc(t *testing.T) (AuthService, *userRepoStub, jwt.TokenUtil) {
	t.Helper()
	ur := newUserRepoStub()
	util, err := jwt.NewJWTUtil(testJWTConfig())
	require.NoError(t, err)
	return NewAuthService(ur, util, testValidator(), zap.NewNop()), ur, util
}

func TestAuthService_RegisterLogin(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterDTO{Email: "e@example.com", Password: "Aa1aaaaa", Username: "user"})
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, user.Role)
	require.NotEqual(t, "Aa1aaaaa", user.PasswordHash)

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "e@example.com", Password: "Aa1aaaaa"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterDTO{Email: "e@example.com", Password: "Aa1aaaaa", Username: "user"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterDTO{Email: "E@EXAMPLE.COM", Password: "Aa1aaaaa", Username: "other"})
	require.True(t, authErrors.IsAlreadyExists(err))
}

func TestAuthService_RegisterUnknownRole(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	_, err := svc.Register(context.Background(), dto.RegisterDTO{Email: "e@example.com", Password: "Aa1aaaaa", Username: "user", Role: "Root"})
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestAuthService_LoginInvalidPassword(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterDTO{Email: "user@example.com", Password: "Aa1aaaaa", Username: "user"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "user@example.com", Password: "bad"})
	require.True(t, authErrors.IsInvalidCredentials(err))

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "bad"})
	require.True(t, authErrors.IsInvalidCredentials(err))
}

func TestIssueTokens_RefreshLifetimes(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	user := model.User{ID: uuid.New(), Email: "a@b.com", Username: "A", Role: model.RoleUser}

	pair, err := svc.IssueTokens(user, false)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(3*24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)

	pair, err = svc.IssueTokens(user, true)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(30*24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)
}

func TestIssueTokens_Preconditions(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	valid := model.User{ID: uuid.New(), Email: "a@b.com", Username: "A", Role: model.RoleUser}

	cases := []struct {
		name   string
		mutate func(u model.User) model.User
	}{
		{"empty id", func(u model.User) model.User { u.ID = uuid.Nil; return u }},
		{"blank email", func(u model.User) model.User { u.Email = "  "; return u }},
		{"blank name", func(u model.User) model.User { u.Username = ""; return u }},
		{"unknown role", func(u model.User) model.User { u.Role = "Root"; return u }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.IssueTokens(tc.mutate(valid), false)
			require.True(t, authErrors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestAuthService_LoginScenario(t *testing.T) {
	svc, ur, util := newAuthSvc(t)
	u1 := model.User{ID: uuid.New(), Email: "a@b.com", Username: "A", PasswordHash: "x", Role: model.RoleUser}
	ur.users[u1.ID] = u1

	pair, err := svc.IssueTokens(u1, false)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(3*24*time.Hour), pair.RefreshExpiresAt, 5*time.Second)

	claims, err := util.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u1.ID.String(), claims.Subject)
	require.Equal(t, "User", claims.Role)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, ur, util := newAuthSvc(t)
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "a@b.com", Username: "A", PasswordHash: "x", Role: model.RoleAdmin}
	ur.users[u.ID] = u

	// Even a remember-me login refreshes into the short lifetime.
	pair, err := svc.IssueTokens(u, true)
	require.NoError(t, err)

	newPair, err := svc.Refresh(ctx, dto.RefreshDTO{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(3*24*time.Hour), newPair.RefreshExpiresAt, 5*time.Second)
	require.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	claims, err := util.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID.String(), claims.Subject)
	require.Equal(t, "Admin", claims.Role)
}

func TestAuthService_RefreshDeletedUser(t *testing.T) {
	svc, ur, _ := newAuthSvc(t)
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "a@b.com", Username: "A", Role: model.RoleUser}
	ur.users[u.ID] = u
	pair, err := svc.IssueTokens(u, false)
	require.NoError(t, err)

	delete(ur.users, u.ID)
	_, err = svc.Refresh(ctx, dto.RefreshDTO{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
	require.True(t, authErrors.IsInvalidCredentials(err))
}

func TestAuthService_RefreshGarbage(t *testing.T) {
	svc, _, _ := newAuthSvc(t)
	_, err := svc.Refresh(context.Background(), dto.RefreshDTO{AccessToken: "garbage", RefreshToken: "whatever"})
	require.True(t, authErrors.IsTokenMalformed(err))
}
