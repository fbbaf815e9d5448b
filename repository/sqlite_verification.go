package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

type sqliteVerificationTokenRepo struct {
	db  database.TxQuerier
	now func() time.Time
}

func NewSQLiteVerificationTokenRepo(db database.TxQuerier) VerificationTokenRepository {
	return &sqliteVerificationTokenRepo{db: db, now: time.Now}
}

func (r *sqliteVerificationTokenRepo) Create(ctx context.Context, t *models.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (id, account_id, account_kind, token_hash, expires_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.AccountID,
		t.AccountRole,
		t.TokenHash,
		t.ExpiresAt.UTC(),
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

func (r *sqliteVerificationTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*models.VerificationToken, error) {
	t := &models.VerificationToken{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, account_kind, token_hash, expires_at, created_at
		FROM verification_tokens WHERE token_hash = ?`,
		tokenHash,
	).Scan(&t.ID, &t.AccountID, &t.AccountRole, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return t, nil
}

func (r *sqliteVerificationTokenRepo) DeleteByAccount(ctx context.Context, accountID string, kind models.Role) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE account_id = ? AND account_kind = ?`,
		accountID, kind,
	)
	if err != nil {
		return fmt.Errorf("failed to delete verification tokens: %w", err)
	}
	return nil
}

// DeleteExpired, süresi dolmuş token'ları siler. Karşılaştırma Go tarafındaki
// saatle yapılır; kayıtlı değerler UTC'dir.
func (r *sqliteVerificationTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE expires_at <= ?`, r.now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verification tokens: %w", err)
	}
	return result.RowsAffected()
}
