package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer is what the facade needs from the email service
type Mailer interface {
	IsEnabled() bool
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendAbsenceEmail(ctx context.Context, toEmail, toName, childName, date string) error
}

// sesAPI is the subset of the SES client used here
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends parent notifications via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates the email service. An empty fromEmail yields a disabled
// service that logs and skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service: region=%s, from=%s", awsRegion, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

var (
	welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Welcome to ByteBabies</h2>
<p>Hi {{.Name}},</p>
<p>Your parent account is ready. You can now see your children's attendance, upcoming events and announcements, and message the office.</p>
<p><a href="{{.BaseURL}}">Open ByteBabies</a></p>
<p style="font-size: 12px; color: #666;">This is an automated email. Please do not reply.</p>
</body></html>`))

	absenceHTML = template.Must(template.New("absence").Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Absence recorded</h2>
<p>Hi {{.Name}},</p>
<p>{{.Child}} was marked absent on {{.Date}}.</p>
<p>If this is unexpected, please contact the office through the app.</p>
<p style="font-size: 12px; color: #666;">This is an automated email. Please do not reply.</p>
</body></html>`))
)

// SendWelcomeEmail greets a newly registered parent
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		s.skip("welcome", toEmail)
		return nil
	}

	var html bytes.Buffer
	if err := welcomeHTML.Execute(&html, map[string]string{"Name": toName, "BaseURL": s.appBaseURL}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}
	text := fmt.Sprintf("Hi %s,\n\nYour ByteBabies parent account is ready.\n\nOpen ByteBabies: %s\n", toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, "Welcome to ByteBabies", html.String(), text)
}

// SendAbsenceEmail tells a parent their child was marked absent
func (s *EmailService) SendAbsenceEmail(ctx context.Context, toEmail, toName, childName, date string) error {
	if !s.enabled {
		s.skip("absence", toEmail)
		return nil
	}

	var html bytes.Buffer
	data := map[string]string{"Name": toName, "Child": childName, "Date": date}
	if err := absenceHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render absence email: %w", err)
	}
	text := fmt.Sprintf("Hi %s,\n\n%s was marked absent on %s.\nIf this is unexpected, please contact the office through the app.\n", toName, childName, date)

	return s.sendEmail(ctx, toEmail, fmt.Sprintf("%s was marked absent", childName), html.String(), text)
}

func (s *EmailService) skip(kind, toEmail string) {
	log.Printf("Skipping email send (service disabled): %s to %s", kind, toEmail)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s, to=%s, subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
