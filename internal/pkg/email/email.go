package email

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationEmail(toEmail, toName, token string) error
	SendRegistrationPendingEmail(toEmail, toName string) error
	SendApprovalEmail(toEmail, toName string, generatedPassword string) error
	SendRejectionEmail(toEmail, toName, reason string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// credentialsMissing reports whether SMTP delivery is configured. Without
// credentials emails are logged instead of sent so local setups keep working.
func (s *EmailServiceImpl) credentialsMissing() bool {
	return s.config.Username == "" || s.config.Password == ""
}

// SendVerificationEmail sends an email with a verification link/token
func (s *EmailServiceImpl) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := fmt.Sprintf("%s/api/v1/alumni/auth/verify-email?token=%s", s.config.BaseURL, token)

	if s.credentialsMissing() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("verificationURL", verificationURL).
			Msg("SMTP credentials not configured - verification email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := "Verify Your Email Address - Alumni Association"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to the Alumni Association!</h2>
				<p>Hello %s,</p>
				<p>Thank you for registering. To complete your registration, please verify your email address by clicking the button below:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Verify Email</a>
				</div>

				<p>Alternatively, you can use this verification code: <strong>%s</strong></p>

				<p>This verification link and code will expire in 24 hours.</p>

				<p>If you did not register for an alumni account, please ignore this email.</p>

				<p>Best regards,<br>The Alumni Association Team</p>
			</div>
		</body>
		</html>
	`, toName, verificationURL, token)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRegistrationPendingEmail tells a verified user their account awaits approval
func (s *EmailServiceImpl) SendRegistrationPendingEmail(toEmail, toName string) error {
	if s.credentialsMissing() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - pending approval email not sent.")
		return nil
	}

	subject := "Registration Received - Alumni Association"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Registration Received</h2>
				<p>Hello %s,</p>
				<p>Your email has been verified and your registration is now awaiting review by an administrator. We will notify you once your account has been approved.</p>

				<p>Best regards,<br>The Alumni Association Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApprovalEmail notifies an approved member. A non-empty generatedPassword
// is included for accounts that registered without one.
func (s *EmailServiceImpl) SendApprovalEmail(toEmail, toName string, generatedPassword string) error {
	if s.credentialsMissing() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Bool("passwordGenerated", generatedPassword != "").
			Msg("SMTP credentials not configured - approval email not sent.")
		return nil
	}

	passwordSection := ""
	if generatedPassword != "" {
		passwordSection = fmt.Sprintf(`
				<p>A temporary password has been generated for your account: <strong>%s</strong></p>
				<p>Please change it after your first login.</p>`, generatedPassword)
	}

	subject := "Your Account Has Been Approved - Alumni Association"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Account Approved</h2>
				<p>Hello %s,</p>
				<p>Your alumni account has been approved and is now active. You can log in at %s.</p>
				%s
				<p>Welcome to the community!</p>

				<p>Best regards,<br>The Alumni Association Team</p>
			</div>
		</body>
		</html>
	`, toName, s.config.BaseURL, passwordSection)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRejectionEmail notifies a rejected applicant with the recorded reason
func (s *EmailServiceImpl) SendRejectionEmail(toEmail, toName, reason string) error {
	if s.credentialsMissing() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("reason", reason).
			Msg("SMTP credentials not configured - rejection email not sent.")
		return nil
	}

	subject := "Update on Your Registration - Alumni Association"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Registration Update</h2>
				<p>Hello %s,</p>
				<p>We are sorry to inform you that your registration could not be approved at this time.</p>
				<p>Reason: %s</p>
				<p>If you believe this is a mistake, please contact the association.</p>

				<p>Best regards,<br>The Alumni Association Team</p>
			</div>
		</body>
		</html>
	`, toName, reason)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail sends an email with a password reset link/token
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/api/v1/alumni/auth/reset-password?token=%s", s.config.BaseURL, token)

	if s.credentialsMissing() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := "Reset Your Password - Alumni Association"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset your password. Click the button below to choose a new one:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>Alternatively, you can use this reset code: <strong>%s</strong></p>

				<p>This link and code will expire in 1 hour. If you did not request a reset, please ignore this email.</p>

				<p>Best regards,<br>The Alumni Association Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL, token)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// GenerateToken generates a random token for email verification and
// password reset flows
func GenerateToken() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, 32)

	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", fmt.Errorf("secure random generation failed: %w", err)
		}
		result[i] = chars[n.Int64()]
	}

	return string(result), nil
}
