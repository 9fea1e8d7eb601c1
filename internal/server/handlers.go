// internal/server/handlers.go
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	stderrors "leadgen-backend/internal/common/errors"
	"leadgen-backend/internal/common/metrics"
	"leadgen-backend/internal/emi"
	"leadgen-backend/internal/lead"
)

func (s *Server) handleCreateLead(c *fiber.Ctx) error {
	var input lead.NewLead
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	leadID, err := s.leads.Create(c.UserContext(), input)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"leadId":  leadID,
		"message": "OTP sent successfully",
		"otpSent": true,
	})
}

func (s *Server) handleVerifyOTP(c *fiber.Ctx) error {
	var req struct {
		LeadID  string `json:"leadId"`
		OTPCode string `json:"otpCode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.LeadID == "" || req.OTPCode == "" {
		return s.respondError(c, stderrors.NewValidationFailedError([]stderrors.FieldError{
			{Field: "leadId", Code: "MISSING_REQUIRED", Message: "leadId and otpCode are required"},
		}))
	}

	result, err := s.leads.Verify(c.UserContext(), req.LeadID, req.OTPCode)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"verified":    result.Verified,
		"creditScore": result.CreditScore,
		"grade":       result.Grade,
		"message":     "OTP verified successfully",
	})
}

func (s *Server) handleResendOTP(c *fiber.Ctx) error {
	if err := s.leads.ResendOTP(c.UserContext(), c.Params("leadId")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "OTP resent successfully"})
}

func (s *Server) handleGetLead(c *fiber.Ctx) error {
	public, err := s.leads.Get(c.UserContext(), c.Params("leadId"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(public)
}

func (s *Server) handleBankOffers(c *fiber.Ctx) error {
	loanType := c.Params("loanType")

	found, err := s.catalog.Query(c.UserContext(), loanType)
	if err != nil {
		return s.respondError(c, err)
	}
	metrics.OfferQueries.WithLabelValues(loanType).Inc()

	return c.JSON(fiber.Map{
		"loanType":    loanType,
		"offers":      found,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCalculateEMI(c *fiber.Ctx) error {
	var input emi.Input
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	calc, err := s.emi.Compute(c.UserContext(), input)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"loanAmount":    calc.LoanAmount,
		"interestRate":  calc.InterestRate,
		"tenure":        calc.TenureMonths,
		"monthlyEmi":    calc.MonthlyEMI,
		"totalAmount":   calc.TotalAmount,
		"totalInterest": calc.TotalInterest,
	})
}

func (s *Server) handleEMISchedule(c *fiber.Ctx) error {
	var input emi.Input
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	rows, err := s.emi.Schedule(c.UserContext(), input)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"loanAmount":   input.LoanAmount,
		"interestRate": input.InterestRate,
		"tenure":       input.TenureMonths,
		"schedule":     rows,
	})
}

func (s *Server) handleEMIHistory(c *fiber.Ctx) error {
	leadID := c.Params("leadId")

	history, err := s.emi.History(c.UserContext(), leadID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"leadId":       leadID,
		"calculations": history,
	})
}

func (s *Server) handleShareWhatsApp(c *fiber.Ctx) error {
	var req struct {
		MobileNumber string `json:"mobileNumber"`
		Message      string `json:"message"`
		LeadID       string `json:"leadId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.MobileNumber == "" || req.Message == "" {
		return s.respondError(c, stderrors.NewValidationFailedError([]stderrors.FieldError{
			{Field: "mobileNumber", Code: "MISSING_REQUIRED", Message: "mobileNumber and message are required"},
		}))
	}

	if err := s.sharer.Share(c.UserContext(), req.MobileNumber, req.Message); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Details shared successfully on WhatsApp",
	})
}

// respondError maps service errors onto HTTP responses. Unknown errors are
// logged and masked as a plain 500.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	stdErr, ok := stderrors.AsStandardError(err)
	if !ok {
		s.log.WithError(err).Error("unhandled error", map[string]interface{}{
			"path": c.Path(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	status := stderrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		s.log.WithError(err).Error("request failed", map[string]interface{}{
			"path": c.Path(),
			"code": string(stdErr.Code),
		})
	}

	body := fiber.Map{
		"code":    stdErr.Code,
		"message": stdErr.Message,
	}
	if len(stdErr.FieldErrors) > 0 {
		body["errors"] = stdErr.FieldErrors
	}
	return c.Status(status).JSON(body)
}
