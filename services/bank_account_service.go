package services

import (
	"context"
	"fmt"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/crypto"
	"github.com/akinalp/sigma/repository"
)

// BankAccountService, eğitmen ödeme hesapları. Hesap numarası repository'ye
// şifreli gider, yanıtlara maskeli döner.
type BankAccountService interface {
	List(ctx context.Context, instructorID string) ([]models.BankAccount, error)
	Create(ctx context.Context, instructorID string, req *models.CreateBankAccountRequest) (*models.BankAccount, error)
}

type bankAccountService struct {
	repo   repository.BankAccountRepository
	cipher *crypto.FieldCipher
}

func NewBankAccountService(repo repository.BankAccountRepository, cipher *crypto.FieldCipher) BankAccountService {
	return &bankAccountService{repo: repo, cipher: cipher}
}

func (s *bankAccountService) List(ctx context.Context, instructorID string) ([]models.BankAccount, error) {
	stored, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	accounts := make([]models.BankAccount, 0, len(stored))
	for _, st := range stored {
		number, err := s.cipher.Decrypt(st.AccountNumberEnc)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt bank account %s: %w", st.ID, err)
		}
		a := st.BankAccount
		a.AccountNumber = number
		a.MaskedNumber = models.MaskAccountNumber(number)
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *bankAccountService) Create(ctx context.Context, instructorID string, req *models.CreateBankAccountRequest) (*models.BankAccount, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	enc, err := s.cipher.Encrypt(req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt account number: %w", err)
	}

	stored := &repository.StoredBankAccount{
		BankAccount: models.BankAccount{
			InstructorID: instructorID,
			BankName:     req.BankName,
			HolderName:   req.HolderName,
		},
		AccountNumberEnc: enc,
	}
	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, err
	}

	a := stored.BankAccount
	a.AccountNumber = req.AccountNumber
	a.MaskedNumber = models.MaskAccountNumber(req.AccountNumber)
	return &a, nil
}
