package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

func TestCourseServiceLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	instructors := repository.NewSQLiteInstructorRepo(db.Conn)
	owner := seedAccount(t, instructors, "owner@example.com", models.RoleInstructor)
	other := seedAccount(t, instructors, "other@example.com", models.RoleInstructor)

	svc := NewCourseService(repository.NewSQLiteCourseRepo(db.Conn))

	course, err := svc.Create(ctx, owner.ID, &models.CreateCourseRequest{Title: "Go Basics", Price: 4900})
	require.NoError(t, err)
	assert.False(t, course.Published)

	// Yayında değilken katalogda görünmez
	_, err = svc.GetPublished(ctx, course.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	list, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	published := true
	_, err = svc.Update(ctx, other.ID, course.ID, &models.UpdateCourseRequest{Published: &published})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	updated, err := svc.Update(ctx, owner.ID, course.ID, &models.UpdateCourseRequest{Published: &published})
	require.NoError(t, err)
	assert.True(t, updated.Published)

	got, err := svc.GetPublished(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", got.Title)

	mine, err := svc.ListByInstructor(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCourseServiceValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedAccount(t, repository.NewSQLiteInstructorRepo(db.Conn), "owner@example.com", models.RoleInstructor)
	svc := NewCourseService(repository.NewSQLiteCourseRepo(db.Conn))

	_, err := svc.Create(ctx, owner.ID, &models.CreateCourseRequest{Title: "Go", Price: 100})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Create(ctx, owner.ID, &models.CreateCourseRequest{Title: "Go Basics", Price: -1})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Create(ctx, owner.ID, &models.CreateCourseRequest{Title: "Go Basics", CategoryID: strPtr("missing")})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Update(ctx, owner.ID, "missing", &models.UpdateCourseRequest{})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
