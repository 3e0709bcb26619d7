package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	customErrors "github.com/qzterxm/HealthUp/internal/auth/errors"
	"github.com/qzterxm/HealthUp/internal/auth/model"
)

type PostgresResetCodeRepo struct {
	db *gorm.DB
}

func NewPostgresResetCodeRepo(db *gorm.DB) *PostgresResetCodeRepo {
	return &PostgresResetCodeRepo{db: db}
}

func (p *PostgresResetCodeRepo) Insert(ctx context.Context, code model.PasswordResetCode) error {
	res := p.db.WithContext(ctx).Create(&code)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "Insert reset code")
	}
	return nil
}

func (p *PostgresResetCodeRepo) FindValid(ctx context.Context, userID uuid.UUID, code int, now time.Time) (model.PasswordResetCode, error) {
	var rec model.PasswordResetCode
	res := p.db.WithContext(ctx).
		Where("user_id = ? AND reset_code = ? AND is_used = ? AND expires_at > ?", userID, code, false, now).
		First(&rec)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.PasswordResetCode{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.PasswordResetCode{}, customErrors.WrapInternal(err, "FindValid reset code")
	}

	return rec, nil
}

// Consume is a single conditional UPDATE: the is_used flip and the
// validity check happen in one statement, so two racing completions for
// the same code cannot both observe it as valid.
func (p *PostgresResetCodeRepo) Consume(ctx context.Context, userID uuid.UUID, code int, now time.Time) error {
	res := p.db.WithContext(ctx).Model(&model.PasswordResetCode{}).
		Where("user_id = ? AND reset_code = ? AND is_used = ? AND expires_at > ?", userID, code, false, now).
		Update("is_used", true)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "Consume reset code")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}
