package models

import (
	"fmt"
	"strings"
	"time"
)

// VerificationToken, email doğrulama token'ının DB kaydı.
//
// Plaintext token sadece email ile gönderilir, DB'de SHA256 hash'i
// (hex, 64 karakter) saklanır. AccountRole hangi tablonun güncelleneceğini
// belirler (user → users, instructor → instructors).
type VerificationToken struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	AccountRole Role      `json:"account_role"`
	TokenHash   string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// VerifyEmailRequest, email'deki linkten gelen token.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

func (r *VerifyEmailRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		return fmt.Errorf("token is required")
	}
	return nil
}
