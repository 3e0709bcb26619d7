package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qzterxm/HealthUp/internal/auth/dto"
	customErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/jwt"
	"github.com/qzterxm/HealthUp/internal/auth/model"
	"github.com/qzterxm/HealthUp/internal/repo"
)

// Refresh lifetimes are a login-time policy: remember-me stretches the
// refresh window, a refresh call always falls back to the short one.
const (
	rememberMeRefreshTTL = 30 * 24 * time.Hour
	shortRefreshTTL      = 3 * 24 * time.Hour
)

type authService struct {
	userRepo  repo.UserRepo
	tokenUtil jwt.TokenUtil
	v         *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

func NewAuthService(userRepo repo.UserRepo, tokenUtil jwt.TokenUtil, v *validator.Validate, log *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenUtil: tokenUtil,
		v:         v,
		log:       log,
		now:       time.Now,
	}
}

func (a *authService) Register(ctx context.Context, d dto.RegisterDTO) (model.User, error) {
	if err := a.v.Struct(d); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	role := model.RoleUser
	if d.Role != "" {
		parsed, err := model.ParseRole(d.Role)
		if err != nil {
			return model.User{}, err
		}
		role = parsed
	}

	passwordHash, err := argon2id.CreateHash(d.Password, argon2id.DefaultParams)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        d.Email,
		Username:     d.Username,
		PasswordHash: passwordHash,
		Age:          d.Age,
		Role:         role,
	}

	if _, err := a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(d.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.IssueTokens(user, d.RememberMe)
}

func (a *authService) IssueTokens(user model.User, rememberMe bool) (model.TokenPair, error) {
	if user.ID == uuid.Nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument("user id is required")
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.TokenPair{}, customErrors.NewInvalidArgument("user email is required")
	}
	if strings.TrimSpace(user.Username) == "" {
		return model.TokenPair{}, customErrors.NewInvalidArgument("user name is required")
	}
	if !user.Role.Valid() {
		return model.TokenPair{}, customErrors.NewInvalidArgument("unknown role: " + user.Role.String())
	}

	accessToken, _, err := a.tokenUtil.GenerateAccessToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueTokens")
	}

	refreshToken, err := a.tokenUtil.GenerateRefreshToken()
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueTokens")
	}

	refreshTTL := shortRefreshTTL
	if rememberMe {
		refreshTTL = rememberMeRefreshTTL
	}

	return model.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: a.now().Add(refreshTTL),
	}, nil
}

func (a *authService) Refresh(ctx context.Context, d dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokenUtil.ParseExpiredToken(d.AccessToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if errors.Is(err, customErrors.ErrNotFound) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	return a.IssueTokens(user, false)
}
