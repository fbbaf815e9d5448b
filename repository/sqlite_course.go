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

type sqliteCourseRepo struct {
	db database.TxQuerier
}

func NewSQLiteCourseRepo(db database.TxQuerier) CourseRepository {
	return &sqliteCourseRepo{db: db}
}

const courseColumns = "id, instructor_id, category_id, title, description, price, published, created_at"

func (r *sqliteCourseRepo) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (id, instructor_id, category_id, title, description, price, published)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		course.InstructorID,
		course.CategoryID,
		course.Title,
		course.Description,
		course.Price,
		course.Published,
	).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category not found", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

func (r *sqliteCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c := &models.Course{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.InstructorID, &c.CategoryID, &c.Title, &c.Description, &c.Price, &c.Published, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return c, nil
}

func (r *sqliteCourseRepo) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET category_id = ?, title = ?, description = ?, price = ?, published = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		course.CategoryID,
		course.Title,
		course.Description,
		course.Price,
		course.Published,
		course.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category not found", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to update course: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteCourseRepo) ListPublished(ctx context.Context, categoryID string) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + ` FROM courses
		WHERE published = 1
		  AND (? = '' OR category_id = ? OR category_id IN (SELECT id FROM categories WHERE parent_id = ?))
		ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, categoryID, categoryID, categoryID)
}

func (r *sqliteCourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + ` FROM courses
		WHERE instructor_id = ?
		ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, instructorID)
}

func (r *sqliteCourseRepo) list(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.InstructorID, &c.CategoryID, &c.Title, &c.Description, &c.Price, &c.Published, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}
