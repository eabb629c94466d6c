package email

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type emailSender interface {
	Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error)
}

type EmailService struct {
	emails   emailSender
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	client := resend.NewClient(apiKey)
	return &EmailService{
		emails:   client.Emails,
		from:     from,
		fromName: fromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(email, firstName string) error {
	s.logger.Info("sending welcome email", zap.String("to", email))

	templateData := map[string]interface{}{
		"FirstName": firstName,
		"Email":     email,
		"Year":      time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Error("failed to render welcome template", zap.String("to", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to OurQuotes!",
		Html:    html,
	}

	resp, err := s.emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("to", email), zap.Error(err))
		return err
	}

	s.logger.Info("sent welcome email", zap.String("to", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
