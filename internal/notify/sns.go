package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	stderrors "leadgen-backend/internal/common/errors"
)

// SNSSender delivers OTP codes as transactional SMS through AWS SNS.
type SNSSender struct {
	client   *sns.Client
	senderID string
}

func NewSNSSender(ctx context.Context, region, senderID string) (*SNSSender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSSender{client: sns.NewFromConfig(cfg), senderID: senderID}, nil
}

func (s *SNSSender) SendOTP(ctx context.Context, mobileNumber, code string) error {
	message := fmt.Sprintf("%s is your verification code. It expires in 5 minutes.", code)
	// Leading country code for Indian mobile numbers.
	phone := "+91" + mobileNumber

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    strPtr("String"),
			StringValue: strPtr("Transactional"),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    strPtr("String"),
			StringValue: strPtr(s.senderID),
		}
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       &phone,
		Message:           &message,
		MessageAttributes: attrs,
	})
	if err != nil {
		return stderrors.NewOTPSendFailedError(err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
