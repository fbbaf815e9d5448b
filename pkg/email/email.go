// Package email, email gönderimi için soyutlama katmanı sağlar.
//
// Service'ler EmailSender interface'ine bağımlıdır; Resend implementasyonu
// main'de wire edilir. RESEND_API_KEY tanımlı değilse NopSender kullanılır.
package email

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/url"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendVerification, hesabın email adresini doğrulama linkini gönderir.
	// token plaintext'tir; DB'de yalnızca SHA-256 hash'i saklanır.
	SendVerification(ctx context.Context, toEmail, name, token string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string
	appURL    string
}

// NewResendSender, Resend client'ı ile yeni bir EmailSender oluşturur.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// VerificationLink, email içine gömülen doğrulama linkini üretir.
func VerificationLink(appURL, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", appURL, url.QueryEscape(token))
}

func (s *resendSender) SendVerification(ctx context.Context, toEmail, name, token string) error {
	link := VerificationLink(s.appURL, token)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Sigma Academy <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Verify your email address",
		Html:    verificationHTML(name, link),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func verificationHTML(name, link string) string {
	escapedLink := html.EscapeString(link)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#1f2937;font-size:22px;margin:0 0 16px 0;">Sigma Academy</h1>
              <p style="color:#374151;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Hi %s, please confirm your email address to finish setting up your account.
              </p>
              <p style="margin:0 0 24px 0;">
                <a href="%s" style="background-color:#2563eb;color:#ffffff;text-decoration:none;padding:12px 28px;border-radius:6px;font-weight:600;">Verify email</a>
              </p>
              <p style="color:#6b7280;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                This link expires in 24 hours. If the button does not work, open:<br>
                <a href="%s" style="color:#2563eb;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, html.EscapeString(name), escapedLink, escapedLink, escapedLink)
}

// NopSender, email konfigüre edilmediğinde kullanılır; sadece loglar.
type NopSender struct{}

func (NopSender) SendVerification(_ context.Context, toEmail, _, _ string) error {
	log.Printf("[email] sender not configured, skipping verification mail to %s", toEmail)
	return nil
}
