package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"worklog-panel/internal/data/entity"
	"worklog-panel/internal/data/repository"
	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/pkg/metrics"
	"worklog-panel/pkg/ratelimit"
	"worklog-panel/pkg/sms"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultOTPValidity = 5 * time.Minute

// AttemptLimiter throttles failed verifications per user.
type AttemptLimiter interface {
	Check(ctx context.Context, userID uuid.UUID) error
	RecordFailure(ctx context.Context, userID uuid.UUID) error
	Reset(ctx context.Context, userID uuid.UUID) error
}

type OTPService interface {
	SendOTP(ctx context.Context, userID uuid.UUID) (*response.SendOTPResponse, error)
	VerifyOTP(ctx context.Context, userID uuid.UUID, req *request.VerifyOTPRequest) error
}

type otpService struct {
	otpRepo  repository.OTPRepository
	userRepo repository.UserRepository
	sender   sms.Sender
	limiter  AttemptLimiter
	metrics  *metrics.Metrics
	validity time.Duration
	encoding string
	log      *zap.Logger
	now      func() time.Time
}

// NewOTPService wires the issuer and verifier. limiter may be nil, which
// disables attempt throttling.
func NewOTPService(
	repo *repository.Repository,
	sender sms.Sender,
	limiter AttemptLimiter,
	m *metrics.Metrics,
	config *utils.Config,
	log *zap.Logger,
) OTPService {
	validity := time.Duration(config.OTP.ExpiryMinutes) * time.Minute
	if validity <= 0 {
		validity = defaultOTPValidity
	}
	return &otpService{
		otpRepo:  repo.OTP,
		userRepo: repo.User,
		sender:   sender,
		limiter:  limiter,
		metrics:  m,
		validity: validity,
		encoding: config.SMS.Encoding,
		log:      log.With(zap.String("service", "otp")),
		now:      time.Now,
	}
}

func (s *otpService) SendOTP(ctx context.Context, userID uuid.UUID) (*response.SendOTPResponse, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if user.Phone == nil || *user.Phone == "" {
		return nil, fmt.Errorf("%w: phone number not set", ErrInvalidInput)
	}

	code, err := utils.GenerateOTP(utils.OTPLength)
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	now := s.now()
	otp := &entity.OTPCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(s.validity),
	}

	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("%w: save otp: %v", ErrStorage, err)
	}
	s.metrics.OTPIssued.Inc()

	result, err := s.sender.Send(ctx, sms.Message{
		Phone:    *user.Phone,
		Text:     fmt.Sprintf("Dogrulama kodunuz: %s", code),
		Encoding: s.encoding,
	})
	if err != nil {
		s.metrics.SMSSent.WithLabelValues("failed").Inc()
		s.log.Error("Failed to send OTP SMS",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		if errors.Is(err, sms.ErrInvalidPhone) {
			return nil, fmt.Errorf("%w: phone number is not valid", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: could not send sms", ErrUpstream)
	}
	s.metrics.SMSSent.WithLabelValues("sent").Inc()

	s.log.Info("OTP sent",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", otp.ExpiresAt))

	return &response.SendOTPResponse{
		Sent:      true,
		Phone:     utils.MaskPhone(*user.Phone),
		ExpiresAt: otp.ExpiresAt,
		JobID:     result.JobID,
	}, nil
}

// VerifyOTP matches code against the newest usable code of the user and
// consumes it. Exactly one otp row is updated on success, none on failure.
func (s *otpService) VerifyOTP(ctx context.Context, userID uuid.UUID, req *request.VerifyOTPRequest) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}
	if len(req.Code) != utils.OTPLength {
		s.observe("invalid_input")
		return fmt.Errorf("%w: code must be exactly %d characters", ErrInvalidInput, utils.OTPLength)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.observe("invalid_input")
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if s.limiter != nil {
		if err := s.limiter.Check(ctx, userID); err != nil {
			if errors.Is(err, ratelimit.ErrLocked) {
				s.observe("locked")
				return fmt.Errorf("%w: too many wrong codes, try again later", ErrTooManyAttempts)
			}
			s.log.Warn("OTP limiter unavailable", zap.Error(err))
		}
	}

	otp, err := s.otpRepo.FindLatestValid(ctx, userID)
	if err != nil {
		s.observe("storage_error")
		return fmt.Errorf("%w: find otp: %v", ErrStorage, err)
	}
	if otp == nil || !otp.IsUsable(s.now()) {
		s.observe("not_found")
		return fmt.Errorf("%w: no valid code, request a new one", ErrNotFound)
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(req.Code)) != 1 {
		s.recordFailure(ctx, userID)
		s.observe("mismatch")
		s.log.Warn("OTP mismatch", zap.String("user_id", userID.String()))
		return fmt.Errorf("%w: the code is incorrect", ErrMismatch)
	}

	consumed, err := s.otpRepo.Consume(ctx, otp.ID)
	if err != nil {
		s.observe("storage_error")
		return fmt.Errorf("%w: consume otp: %v", ErrStorage, err)
	}
	if !consumed {
		s.observe("not_found")
		return fmt.Errorf("%w: no valid code, request a new one", ErrNotFound)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, userID); err != nil {
			s.log.Warn("Failed to reset OTP attempts", zap.Error(err))
		}
	}

	s.observe("success")
	s.log.Info("OTP verified",
		zap.String("user_id", userID.String()),
		zap.String("otp_id", otp.ID.String()))
	return nil
}

func (s *otpService) recordFailure(ctx context.Context, userID uuid.UUID) {
	if s.limiter == nil {
		return
	}
	err := s.limiter.RecordFailure(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, ratelimit.ErrLocked):
		s.log.Warn("OTP attempts exhausted", zap.String("user_id", userID.String()))
	default:
		s.log.Warn("Failed to record OTP failure", zap.Error(err))
	}
}

func (s *otpService) observe(result string) {
	s.metrics.OTPVerifications.WithLabelValues(result).Inc()
}
