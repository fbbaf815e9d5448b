package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

type sqliteVoucherRepo struct {
	db database.TxQuerier
}

func NewSQLiteVoucherRepo(db database.TxQuerier) VoucherRepository {
	return &sqliteVoucherRepo{db: db}
}

func (r *sqliteVoucherRepo) Upsert(ctx context.Context, v *models.Voucher) error {
	query := `
		INSERT INTO vouchers (code, discount_percent, expires_at, max_uses)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			discount_percent = excluded.discount_percent,
			expires_at = excluded.expires_at,
			max_uses = excluded.max_uses`

	var expiresAt any
	if v.ExpiresAt != nil {
		expiresAt = v.ExpiresAt.UTC()
	}

	if _, err := r.db.ExecContext(ctx, query, v.Code, v.DiscountPercent, expiresAt, v.MaxUses); err != nil {
		return fmt.Errorf("failed to upsert voucher: %w", err)
	}
	return nil
}

func (r *sqliteVoucherRepo) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	v := &models.Voucher{}
	err := r.db.QueryRowContext(ctx,
		`SELECT code, discount_percent, expires_at, max_uses, used_count FROM vouchers WHERE code = ?`,
		code,
	).Scan(&v.Code, &v.DiscountPercent, &v.ExpiresAt, &v.MaxUses, &v.UsedCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	return v, nil
}

func (r *sqliteVoucherRepo) IncrementUse(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vouchers SET used_count = used_count + 1
		WHERE code = ? AND (max_uses IS NULL OR used_count < max_uses)`,
		code,
	)
	if err != nil {
		return fmt.Errorf("failed to increment voucher use: %w", err)
	}

	if err := requireAffected(result); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: voucher has no uses left", pkg.ErrBadRequest)
		}
		return err
	}
	return nil
}
