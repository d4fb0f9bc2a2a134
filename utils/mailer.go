package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer struct {
	client *ses.Client
	from   string
}

func NewMailer(ctx context.Context, region, from string) (*Mailer, error) {
	if from == "" {
		return nil, fmt.Errorf("SES_EMAIL not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %w", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// SendEmail sends a plain-text message through SES.
func (m *Mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
