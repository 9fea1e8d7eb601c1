// internal/lead/service.go
package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	stderrors "leadgen-backend/internal/common/errors"
	"leadgen-backend/internal/common/logger"
	"leadgen-backend/internal/common/metrics"
	"leadgen-backend/internal/creditscore"
	"leadgen-backend/internal/notify"
	"leadgen-backend/internal/ratelimit"
)

// ServiceConfig tunes OTP issuance and the brute-force guards.
type ServiceConfig struct {
	OTPTTL            time.Duration
	MaxVerifyAttempts int
	MaxResendsPerHour int
	// DevBypassCode, when non-empty, is accepted in place of the issued
	// code. The config loader refuses to set it in production.
	DevBypassCode string
}

// VerifyResult is returned from a successful verification, including the
// idempotent repeat of one.
type VerifyResult struct {
	Verified    bool   `json:"verified"`
	CreditScore int    `json:"creditScore"`
	Grade       string `json:"grade"`
}

// Service is the lead/OTP state machine. All mutation goes through the
// store's per-lead Update, so concurrent calls cannot double-verify a lead.
type Service struct {
	store  Store
	bureau creditscore.Bureau
	sender notify.OTPSender
	log    logger.Logger

	otpTTL        time.Duration
	devBypassCode string
	verifyLimiter *ratelimit.Limiter
	resendLimiter *ratelimit.Limiter

	// test seams
	now     func() time.Time
	genCode func() (string, error)
}

func NewService(store Store, bureau creditscore.Bureau, sender notify.OTPSender, cfg ServiceConfig, log logger.Logger) *Service {
	ttl := cfg.OTPTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	verifyAttempts := cfg.MaxVerifyAttempts
	if verifyAttempts <= 0 {
		verifyAttempts = 5
	}
	resends := cfg.MaxResendsPerHour
	if resends <= 0 {
		resends = 6
	}

	return &Service{
		store:         store,
		bureau:        bureau,
		sender:        sender,
		log:           log.WithFields(map[string]interface{}{"component": "lead-service"}),
		otpTTL:        ttl,
		devBypassCode: cfg.DevBypassCode,
		verifyLimiter: ratelimit.New(verifyAttempts, ttl/time.Duration(verifyAttempts)),
		resendLimiter: ratelimit.New(resends, time.Hour/time.Duration(resends)),
		now:           time.Now,
		genCode:       generateOTPCode,
	}
}

// Create validates the submission, persists the lead and immediately issues
// the first OTP. The two steps are atomic from the caller's perspective: if
// issuance fails the lead record is removed again.
func (s *Service) Create(ctx context.Context, input NewLead) (string, error) {
	input.Normalize()
	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		return "", stderrors.NewValidationFailedError(fieldErrors)
	}

	loanType, _ := ParseLoanType(input.LoanType)
	now := s.now().UTC()
	l := &Lead{
		ID:            uuid.NewString(),
		PANNumber:     input.PANNumber,
		MobileNumber:  input.MobileNumber,
		MonthlyIncome: input.MonthlyIncome,
		LoanType:      loanType,
		ConsentGiven:  input.ConsentGiven,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, l); err != nil {
		return "", err
	}

	if err := s.issueOTP(ctx, l.ID, l.MobileNumber, "create"); err != nil {
		// No partial state: a lead without a pending OTP must not exist.
		if delErr := s.store.Delete(ctx, l.ID); delErr != nil {
			s.log.Error("rollback after failed OTP issuance failed", map[string]interface{}{
				"leadId": l.ID,
				"error":  delErr,
			})
		}
		return "", err
	}

	metrics.LeadsCreated.Inc()
	s.log.Info("lead created", map[string]interface{}{
		"leadId":   l.ID,
		"loanType": string(loanType),
	})
	return l.ID, nil
}

// ResendOTP regenerates the code for an existing lead, overwriting any prior
// one, and restarts the expiry window.
func (s *Service) ResendOTP(ctx context.Context, leadID string) error {
	if !s.resendLimiter.Allow(leadID) {
		return stderrors.NewRateLimitedError("resend-otp", leadID)
	}

	l, err := s.store.Get(ctx, leadID)
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, leadID, l.MobileNumber, "resend")
}

func (s *Service) issueOTP(ctx context.Context, leadID, mobileNumber, reason string) error {
	code, err := s.genCode()
	if err != nil {
		return stderrors.NewOTPSendFailedError(err)
	}
	expiry := s.now().UTC().Add(s.otpTTL)

	if _, err := s.store.Update(ctx, leadID, func(l *Lead) error {
		l.OTPCode = &code
		l.OTPExpiry = &expiry
		return nil
	}); err != nil {
		return err
	}

	if err := s.sender.SendOTP(ctx, mobileNumber, code); err != nil {
		return err
	}

	metrics.OTPIssued.WithLabelValues(reason).Inc()
	s.log.Info("OTP issued", map[string]interface{}{
		"leadId": leadID,
		"reason": reason,
	})
	return nil
}

// Verify checks the submitted code and, on first success, marks the lead
// verified and stores its credit score. An already-verified lead returns the
// stored score without re-running OTP checks, so a user refreshing the
// confirmation screen sees a stable result.
func (s *Service) Verify(ctx context.Context, leadID, submittedCode string) (*VerifyResult, error) {
	if !s.verifyLimiter.Allow(leadID) {
		metrics.OTPVerifications.WithLabelValues("rate_limited").Inc()
		return nil, stderrors.NewRateLimitedError("verify-otp", leadID)
	}

	var score int
	updated, err := s.store.Update(ctx, leadID, func(l *Lead) error {
		if l.IsOTPVerified {
			// Idempotent repeat: the stored score stands.
			score = *l.CreditScore
			return nil
		}

		if l.OTPCode == nil || l.OTPExpiry == nil {
			return stderrors.NewOTPInvalidError(leadID)
		}
		if !s.now().Before(*l.OTPExpiry) {
			return stderrors.NewOTPExpiredError(leadID)
		}
		if !codesMatch(*l.OTPCode, submittedCode) && !s.bypassMatches(submittedCode) {
			return stderrors.NewOTPInvalidError(leadID)
		}

		computed, err := s.bureau.Score(ctx, l.PANNumber, l.MonthlyIncome)
		if err != nil {
			return stderrors.NewStorageFailureError("credit-score", err)
		}

		l.OTPCode = nil
		l.OTPExpiry = nil
		l.IsOTPVerified = true
		l.CreditScore = &computed
		score = computed
		return nil
	})
	if err != nil {
		s.recordVerifyFailure(leadID, err)
		return nil, err
	}

	metrics.OTPVerifications.WithLabelValues("verified").Inc()
	s.log.Info("lead verified", map[string]interface{}{
		"leadId":      updated.ID,
		"creditScore": score,
	})
	return &VerifyResult{
		Verified:    true,
		CreditScore: score,
		Grade:       creditscore.Grade(score),
	}, nil
}

func (s *Service) bypassMatches(submittedCode string) bool {
	return s.devBypassCode != "" && codesMatch(s.devBypassCode, submittedCode)
}

func (s *Service) recordVerifyFailure(leadID string, err error) {
	result := "error"
	switch {
	case stderrors.HasCode(err, stderrors.ErrCodeOTPExpired):
		result = "expired"
	case stderrors.HasCode(err, stderrors.ErrCodeOTPInvalid):
		result = "invalid"
	case stderrors.HasCode(err, stderrors.ErrCodeLeadNotFound):
		result = "not_found"
	}
	metrics.OTPVerifications.WithLabelValues(result).Inc()
	s.log.Warn("OTP verification failed", map[string]interface{}{
		"leadId": leadID,
		"result": result,
	})
}

// Get returns the lead's public projection.
func (s *Service) Get(ctx context.Context, leadID string) (*Public, error) {
	l, err := s.store.Get(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return l.Public(), nil
}
