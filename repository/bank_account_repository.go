package repository

import (
	"context"

	"github.com/akinalp/sigma/models"
)

// StoredBankAccount, DB'deki haliyle banka hesabı: numara şifreli.
// Şifreleme/çözme service katmanında yapılır; repository plaintext görmez.
type StoredBankAccount struct {
	models.BankAccount
	AccountNumberEnc string
}

// BankAccountRepository, eğitmen banka hesapları için interface.
type BankAccountRepository interface {
	Create(ctx context.Context, account *StoredBankAccount) error
	ListByInstructor(ctx context.Context, instructorID string) ([]StoredBankAccount, error)
}
