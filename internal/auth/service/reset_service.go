package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qzterxm/HealthUp/internal/auth/dto"
	customErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/model"
	"github.com/qzterxm/HealthUp/internal/notify"
	"github.com/qzterxm/HealthUp/internal/repo"
)

const (
	resetCodeMin = 1000
	resetCodeMax = 9999
	resetCodeTTL = 15 * time.Minute

	resetMailSubject = "Password reset"
)

type passwordResetService struct {
	userRepo repo.UserRepo
	codeRepo repo.ResetCodeRepo
	notifier notify.Notifier
	v        *validator.Validate
	log      *zap.Logger
	now      func() time.Time
	rand     io.Reader
}

func NewPasswordResetService(
	userRepo repo.UserRepo,
	codeRepo repo.ResetCodeRepo,
	notifier notify.Notifier,
	v *validator.Validate,
	log *zap.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		codeRepo: codeRepo,
		notifier: notifier,
		v:        v,
		log:      log,
		now:      time.Now,
		rand:     rand.Reader,
	}
}

func (s *passwordResetService) Request(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return customErrors.NewInvalidArgument("email is required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, customErrors.ErrNotFound) {
		// Enumeration resistance: an unknown address is indistinguishable
		// from a successful request.
		s.log.Info("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return customErrors.WrapInternal(err, "Request")
	}

	code, err := s.generateCode()
	if err != nil {
		return customErrors.WrapInternal(err, "Request")
	}

	rec := model.PasswordResetCode{
		ID:        uuid.New(),
		UserID:    user.ID,
		ResetCode: code,
		ExpiresAt: s.now().Add(resetCodeTTL),
		IsUsed:    false,
	}
	if err := s.codeRepo.Insert(ctx, rec); err != nil {
		return customErrors.WrapInternal(err, "Request")
	}

	// The record stays persisted even if delivery fails: the reset remains
	// completable by code, no lost-code lock.
	body := fmt.Sprintf("Your password reset code is <strong>%d</strong>. "+
		"Please enter this code to reset your current password.", code)
	if err := s.notifier.Send(ctx, user.Email, resetMailSubject, body); err != nil {
		return customErrors.WrapDeliveryFailed(err)
	}

	s.log.Info("password reset code issued", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *passwordResetService) Validate(ctx context.Context, userID uuid.UUID, code int) (uuid.UUID, error) {
	rec, err := s.codeRepo.FindValid(ctx, userID, code, s.now())
	if errors.Is(err, customErrors.ErrNotFound) {
		return uuid.Nil, customErrors.ErrInvalidResetCode
	}
	if err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "Validate")
	}
	return rec.UserID, nil
}

func (s *passwordResetService) Complete(ctx context.Context, d dto.ResetCompleteDTO) error {
	if err := s.v.Struct(d); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	if _, err := s.userRepo.GetUserByID(ctx, d.UserID); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrNotFound
		}
		return customErrors.WrapInternal(err, "Complete")
	}

	// Consume is the validity check and the single-use flip in one atomic
	// step; a second Complete with the same code fails here.
	if err := s.codeRepo.Consume(ctx, d.UserID, d.ResetCode, s.now()); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrInvalidResetCode
		}
		return customErrors.WrapInternal(err, "Complete")
	}

	passwordHash, err := argon2id.CreateHash(d.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return customErrors.WrapInternal(err, "Complete")
	}

	if err := s.userRepo.UpdatePassword(ctx, d.UserID, passwordHash); err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrNotFound
		}
		return customErrors.WrapInternal(err, "Complete")
	}

	s.log.Info("password reset completed", zap.String("user_id", d.UserID.String()))
	return nil
}

// generateCode draws uniformly from [1000,9999].
func (s *passwordResetService) generateCode() (int, error) {
	n, err := rand.Int(s.rand, big.NewInt(int64(resetCodeMax-resetCodeMin+1)))
	if err != nil {
		return 0, err
	}
	return resetCodeMin + int(n.Int64()), nil
}
