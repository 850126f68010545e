package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer dispatches account emails. Implementations are fire-and-forget from
// the caller's perspective; send failures are logged, never propagated to the
// triggering request.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendReset(ctx context.Context, to, token string) error
}

// SESMailer sends mail through AWS SES.
type SESMailer struct {
	client      *ses.Client
	from        string
	frontendURL string
}

// NewSESMailer builds an SES-backed mailer. from is the sender identity, e.g.
// "Ordo <noreply@ordodining.com>".
func NewSESMailer(ctx context.Context, region, from, frontendURL string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{
		client:      ses.NewFromConfig(cfg),
		from:        from,
		frontendURL: frontendURL,
	}, nil
}

func (m *SESMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
			},
		},
		Source: aws.String(m.from),
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

// SendVerification mails the email-verification link (valid 24 hours).
func (m *SESMailer) SendVerification(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"<p>Click the link below to verify your email address (expires in 24 hours):</p><p><a href=%q>%s</a></p>",
		link, link,
	)
	return m.send(ctx, to, "Verify your Ordo email", body)
}

// SendReset mails the password-reset link (valid 1 hour).
func (m *SESMailer) SendReset(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"<p>Click the link below to reset your password (expires in 1 hour):</p><p><a href=%q>%s</a></p>",
		link, link,
	)
	return m.send(ctx, to, "Reset your Ordo password", body)
}

// LogMailer is used when no sender identity is configured; it records the mail
// that would have gone out so local development still surfaces the tokens.
type LogMailer struct{}

// SendVerification logs the verification token instead of sending.
func (LogMailer) SendVerification(_ context.Context, to, token string) error {
	log.Printf("mail disabled: verification token for %s: %s", to, token)
	return nil
}

// SendReset logs the reset token instead of sending.
func (LogMailer) SendReset(_ context.Context, to, token string) error {
	log.Printf("mail disabled: reset token for %s: %s", to, token)
	return nil
}
