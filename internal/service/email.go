package service

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/socialite-app/backend/internal/models"
)

// EmailService sends transactional mail over SMTP. When SMTP is not
// configured it logs the message instead, which keeps local development and
// tests working without a mail server.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// NewEmailService creates a new EmailService instance
func NewEmailService() IEmailService {
	return &EmailService{
		smtpHost:     readSecret("smtp_host"),
		smtpPort:     readSecret("smtp_port"),
		smtpUsername: readSecret("smtp_username"),
		smtpPassword: readSecret("smtp_password"),
		fromEmail:    readSecret("email_from"),
		fromName:     readSecret("email_from_name"),
	}
}

// SendVerificationEmail mails a one-time verification code.
func (s *EmailService) SendVerificationEmail(user *models.User, code string) error {
	subject := "Verify Your Email - Socialite"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p>",
		s.displayName(user), code,
	)
	return s.SendEmail(user.Email, subject, body)
}

// SendWelcomeEmail mails the post-verification welcome.
func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to Socialite!"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your email is verified and your account is ready. Head over to your profile and introduce yourself.</p>",
		s.displayName(user),
	)
	return s.SendEmail(user.Email, subject, body)
}

// SendEmail delivers a message, or logs it when SMTP is unconfigured.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpPort == "" {
		fmt.Printf("SMTP not configured, logging email:\n")
		fmt.Printf("To: %s\n", to)
		fmt.Printf("Subject: %s\n", subject)
		fmt.Printf("Body:\n%s\n", body)
		fmt.Printf("--- End Email ---\n")
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) displayName(user *models.User) string {
	name := strings.TrimSpace(user.FirstName)
	if name == "" {
		name = user.Username
	}
	caser := cases.Title(language.English)
	return caser.String(name)
}
