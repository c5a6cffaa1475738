package users_services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/smtp"

	"clubhub/internal/config"
)

// Mailer delivers verification links over the Resend HTTP API, or plain
// SMTP when SMTP_ENABLED is set.
type Mailer struct {
	logger *slog.Logger
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) SendVerificationLink(email, token string) error {
	cfg := config.GetEnv()

	link := fmt.Sprintf("%s/api/v1/users/verify-email?token=%s", cfg.BaseURL, token)
	subject := "Verify your ClubHub account"
	html := fmt.Sprintf(
		`<p>Welcome to ClubHub! Confirm your email address to activate your account:</p>`+
			`<p><a href="%s">Verify email</a></p>`+
			`<p>This link expires in 24 hours. Unverified accounts are removed after a day.</p>`,
		link,
	)

	if cfg.IsMailSuppressed {
		m.logger.Info("Mail suppressed, skipping verification email",
			slog.String("email", email))
		return nil
	}

	if cfg.SMTPEnabled {
		return m.sendViaSMTP(cfg, email, subject, html)
	}

	return m.sendViaResend(cfg, email, subject, html)
}

func (m *Mailer) sendViaResend(cfg config.EnvVariables, to, subject, html string) error {
	body := resendRequest{
		From:    cfg.MailFromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.ResendAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	return nil
}

func (m *Mailer) sendViaSMTP(cfg config.EnvVariables, to, subject, html string) error {
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort

	msg := "From: " + cfg.MailFromEmail + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		html

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, cfg.MailFromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
