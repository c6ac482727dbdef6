// file: internals/features/school/students/service/invite_email_service.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// InviteEmailService sends invite emails via Amazon SES. When no from
// address is configured the service is disabled and sends become no-ops,
// so local development does not need AWS credentials.
type InviteEmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

func NewInviteEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*InviteEmailService, error) {
	if fromEmail == "" {
		log.Println("Invite email service disabled: SES_FROM_EMAIL not configured")
		return &InviteEmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Invite email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &InviteEmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
	}, nil
}

func (s *InviteEmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendInviteEmail sends one parent/student invite carrying the join link.
func (s *InviteEmailService) SendInviteEmail(ctx context.Context, toEmail, schoolName, inviteToken string) error {
	if !s.IsEnabled() {
		log.Printf("Invite email skipped (service disabled): to=%s", toEmail)
		return nil
	}

	joinURL := fmt.Sprintf("%s/join?invite=%s", s.appBaseURL, inviteToken)
	subject := fmt.Sprintf("You're invited to join %s on WiseStudent", schoolName)
	htmlBody := fmt.Sprintf(`
		<p>Hello,</p>
		<p>%s has invited you to join their school on WiseStudent.</p>
		<p><a href="%s">Accept the invitation</a></p>
		<p>This link is valid for 7 days and can only be used once.</p>`,
		schoolName, joinURL)
	textBody := fmt.Sprintf(
		"Hello,\n\n%s has invited you to join their school on WiseStudent.\n\nAccept: %s\n\nThis link is valid for 7 days and can only be used once.\n",
		schoolName, joinURL)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send invite email to %s: %w", toEmail, err)
	}
	return nil
}
