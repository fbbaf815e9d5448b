package repository

import (
	"context"
	"fmt"

	"github.com/akinalp/sigma/database"
)

type sqliteBankAccountRepo struct {
	db database.TxQuerier
}

func NewSQLiteBankAccountRepo(db database.TxQuerier) BankAccountRepository {
	return &sqliteBankAccountRepo{db: db}
}

func (r *sqliteBankAccountRepo) Create(ctx context.Context, a *StoredBankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, instructor_id, bank_name, holder_name, account_number_enc)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.InstructorID,
		a.BankName,
		a.HolderName,
		a.AccountNumberEnc,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bank account: %w", err)
	}
	return nil
}

func (r *sqliteBankAccountRepo) ListByInstructor(ctx context.Context, instructorID string) ([]StoredBankAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, instructor_id, bank_name, holder_name, account_number_enc, created_at
		FROM bank_accounts WHERE instructor_id = ?
		ORDER BY created_at ASC, id ASC`,
		instructorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []StoredBankAccount
	for rows.Next() {
		var a StoredBankAccount
		if err := rows.Scan(&a.ID, &a.InstructorID, &a.BankName, &a.HolderName, &a.AccountNumberEnc, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}

	return accounts, nil
}
