package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worklog-panel/internal/data/entity"
	"worklog-panel/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTPCode) error
	// FindLatestValid returns the newest unconsumed, unexpired code or nil.
	FindLatestValid(ctx context.Context, userID uuid.UUID) (*entity.OTPCode, error)
	// Consume flips consumed to true only if the row is still usable.
	// It reports false when another caller consumed it first or it expired.
	Consume(ctx context.Context, otpID uuid.UUID) (bool, error)
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTPCode) error {
	query := `
		INSERT INTO otp_codes (id, user_id, code, expires_at, consumed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Code,
		otp.ExpiresAt,
		otp.Consumed,
		otp.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create OTP",
			zap.Error(err),
			zap.String("user_id", otp.UserID.String()),
		)
		return fmt.Errorf("create OTP for user %s: %w", otp.UserID, err)
	}

	return nil
}

func (r *otpRepository) FindLatestValid(ctx context.Context, userID uuid.UUID) (*entity.OTPCode, error) {
	query := `
		SELECT id, user_id, code, expires_at, consumed, created_at
		FROM otp_codes
		WHERE user_id = $1
		  AND consumed = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTPCode
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.Consumed,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find valid OTP for user %s: %w", userID, err)
	}

	return &otp, nil
}

func (r *otpRepository) Consume(ctx context.Context, otpID uuid.UUID) (bool, error) {
	query := `
		UPDATE otp_codes
		SET consumed = true
		WHERE id = $1
		  AND consumed = false
		  AND expires_at > NOW()
	`

	result, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		r.log.Error("Failed to consume OTP",
			zap.Error(err),
			zap.String("otp_id", otpID.String()),
		)
		return false, fmt.Errorf("consume OTP %s: %w", otpID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *otpRepository) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM otp_codes WHERE created_at < $1`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to purge OTP codes", zap.Error(err), zap.Time("before", before))
		return 0, fmt.Errorf("purge OTP codes before %s: %w", before.Format(time.RFC3339), err)
	}

	return result.RowsAffected(), nil
}
