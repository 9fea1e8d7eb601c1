// Package notify holds the outbound messaging collaborators. The lead core
// only sees the interfaces; deployments pick the implementation.
package notify

import (
	"context"
	"fmt"

	"leadgen-backend/internal/common/logger"
)

// OTPSender delivers a one-time passcode to a mobile number.
type OTPSender interface {
	SendOTP(ctx context.Context, mobileNumber, code string) error
}

// WhatsAppSharer pushes a free-form message to a user's WhatsApp.
type WhatsAppSharer interface {
	Share(ctx context.Context, mobileNumber, message string) error
}

// LogSender is the mock SMS channel: it logs the code instead of sending it.
// Default outside production, mirroring the reference behaviour.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendOTP(_ context.Context, mobileNumber, code string) error {
	s.log.Info("mock SMS: OTP sent", map[string]interface{}{
		"mobileNumber": maskMobile(mobileNumber),
		"otpCode":      code,
	})
	return nil
}

// LogWhatsAppSharer is the mock WhatsApp integration. A real deployment
// substitutes the WhatsApp Business API here.
type LogWhatsAppSharer struct {
	log logger.Logger
}

func NewLogWhatsAppSharer(log logger.Logger) *LogWhatsAppSharer {
	return &LogWhatsAppSharer{log: log}
}

func (s *LogWhatsAppSharer) Share(_ context.Context, mobileNumber, message string) error {
	s.log.Info("mock WhatsApp: message shared", map[string]interface{}{
		"mobileNumber":  maskMobile(mobileNumber),
		"messageLength": len(message),
	})
	return nil
}

// maskMobile keeps the last four digits for log correlation.
func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return "******"
	}
	return fmt.Sprintf("******%s", mobile[len(mobile)-4:])
}
