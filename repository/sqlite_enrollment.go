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

type sqliteEnrollmentRepo struct {
	db database.TxQuerier
}

func NewSQLiteEnrollmentRepo(db database.TxQuerier) EnrollmentRepository {
	return &sqliteEnrollmentRepo{db: db}
}

const enrollmentColumns = "id, user_id, course_id, price_paid, voucher_code, completed_at, created_at"

func (r *sqliteEnrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, user_id, course_id, price_paid, voucher_code)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.UserID,
		e.CourseID,
		e.PricePaid,
		e.VoucherCode,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: already enrolled in this course", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

func (r *sqliteEnrollmentRepo) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = ?`, id,
	).Scan(&e.ID, &e.UserID, &e.CourseID, &e.PricePaid, &e.VoucherCode, &e.CompletedAt, &e.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment by id: %w", err)
	}

	return e, nil
}

func (r *sqliteEnrollmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.PricePaid, &e.VoucherCode, &e.CompletedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

func (r *sqliteEnrollmentRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE enrollments SET completed_at = ? WHERE id = ? AND completed_at IS NULL`,
		at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete enrollment: %w", err)
	}

	if err := requireAffected(result); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return getErr
			}
			return fmt.Errorf("%w: enrollment already completed", pkg.ErrAlreadyExists)
		}
		return err
	}

	return nil
}

type sqliteCertificateRepo struct {
	db database.TxQuerier
}

func NewSQLiteCertificateRepo(db database.TxQuerier) CertificateRepository {
	return &sqliteCertificateRepo{db: db}
}

func (r *sqliteCertificateRepo) Create(ctx context.Context, cert *models.Certificate) error {
	query := `
		INSERT INTO certificates (id, number, enrollment_id, user_id, course_id, issued_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		cert.Number,
		cert.EnrollmentID,
		cert.UserID,
		cert.CourseID,
		cert.IssuedAt.UTC(),
	).Scan(&cert.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: certificate already issued", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	return nil
}

func (r *sqliteCertificateRepo) GetByEnrollment(ctx context.Context, enrollmentID string) (*models.Certificate, error) {
	c := &models.Certificate{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, number, enrollment_id, user_id, course_id, issued_at FROM certificates WHERE enrollment_id = ?`,
		enrollmentID,
	).Scan(&c.ID, &c.Number, &c.EnrollmentID, &c.UserID, &c.CourseID, &c.IssuedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return c, nil
}

func (r *sqliteCertificateRepo) Verify(ctx context.Context, number string) (*models.CertificateVerification, error) {
	query := `
		SELECT c.number, u.name, co.title, c.issued_at
		FROM certificates c
		JOIN users u ON u.id = c.user_id
		JOIN courses co ON co.id = c.course_id
		WHERE c.number = ?`

	v := &models.CertificateVerification{}
	err := r.db.QueryRowContext(ctx, query, number).Scan(&v.Number, &v.HolderName, &v.CourseTitle, &v.IssuedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify certificate: %w", err)
	}

	return v, nil
}
