package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

// sqliteAccountRepo, AccountRepository'nin SQLite implementasyonu.
// table sabit bir whitelist değeridir (users | instructors), kullanıcı girdisi değil.
type sqliteAccountRepo struct {
	db    database.TxQuerier
	table string
}

// NewSQLiteUserRepo, öğrenci ve admin hesapları (users tablosu).
func NewSQLiteUserRepo(db database.TxQuerier) AccountRepository {
	return &sqliteAccountRepo{db: db, table: "users"}
}

// NewSQLiteInstructorRepo, eğitmen hesapları (instructors tablosu).
func NewSQLiteInstructorRepo(db database.TxQuerier) AccountRepository {
	return &sqliteAccountRepo{db: db, table: "instructors"}
}

const accountColumns = "id, email, password_hash, name, avatar_url, role, verified_at, created_at"

func (r *sqliteAccountRepo) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO ` + r.table + ` (id, email, password_hash, name, avatar_url, role)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.AvatarURL,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already in use", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create account in %s: %w", r.table, err)
	}

	return nil
}

func (r *sqliteAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ` + r.table + ` WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM ` + r.table + ` WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *sqliteAccountRepo) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.AvatarURL,
		&a.Role, &a.VerifiedAt, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account from %s: %w", r.table, err)
	}
	return a, nil
}

func (r *sqliteAccountRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.execOne(ctx, `UPDATE `+r.table+` SET password_hash = ? WHERE id = ?`, hash, id)
}

func (r *sqliteAccountRepo) UpdateAvatar(ctx context.Context, id string, avatarURL *string) error {
	return r.execOne(ctx, `UPDATE `+r.table+` SET avatar_url = ? WHERE id = ?`, avatarURL, id)
}

func (r *sqliteAccountRepo) MarkVerified(ctx context.Context, id string, at time.Time) error {
	return r.execOne(ctx, `UPDATE `+r.table+` SET verified_at = ? WHERE id = ?`, at.UTC(), id)
}

func (r *sqliteAccountRepo) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.table, err)
	}
	return requireAffected(result)
}

// requireAffected, hiçbir satır etkilenmediyse ErrNotFound döner.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation, SQLite FOREIGN KEY constraint hatasını tanır.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
