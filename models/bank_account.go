package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// BankAccount, eğitmenin ödeme alacağı banka hesabı.
//
// AccountNumber DB'de AES-256-GCM ile şifreli durur; yanıtlarda
// sadece MaskedNumber görünür.
type BankAccount struct {
	ID            string    `json:"id"`
	InstructorID  string    `json:"instructor_id"`
	BankName      string    `json:"bank_name"`
	HolderName    string    `json:"holder_name"`
	AccountNumber string    `json:"-"`
	MaskedNumber  string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBankAccountRequest, hesap ekleme body'si.
type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name"`
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
}

func (r *CreateBankAccountRequest) Validate() error {
	r.BankName = strings.TrimSpace(r.BankName)
	r.HolderName = strings.TrimSpace(r.HolderName)
	r.AccountNumber = strings.ReplaceAll(strings.TrimSpace(r.AccountNumber), " ", "")

	if r.BankName == "" {
		return fmt.Errorf("bank_name is required")
	}
	if r.HolderName == "" {
		return fmt.Errorf("holder_name is required")
	}
	if len(r.AccountNumber) < 6 || len(r.AccountNumber) > 34 {
		return fmt.Errorf("account_number must be between 6 and 34 characters")
	}
	for _, ch := range r.AccountNumber {
		if !unicode.IsDigit(ch) && !unicode.IsUpper(ch) {
			return fmt.Errorf("account_number may only contain digits and uppercase letters")
		}
	}
	return nil
}

// MaskAccountNumber, son dört karakter dışındakileri gizler: "****1234".
func MaskAccountNumber(number string) string {
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return "****" + number[len(number)-4:]
}
