package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/ws"
)

func TestCategoryServiceCreateAndTree(t *testing.T) {
	db := newTestDB(t)
	pub := newFakePublisher()
	svc := NewCategoryService(repository.NewSQLiteCategoryRepo(db.Conn), pub)
	ctx := context.Background()

	dev, err := svc.Create(ctx, &models.CreateCategoryRequest{Name: " Development "})
	require.NoError(t, err)
	assert.Equal(t, "Development", dev.Name)

	web, err := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Web", ParentID: &dev.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateCategoryRequest{Name: "Design"})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Design", tree[0].Name)
	assert.Empty(t, tree[0].Subcategories)
	assert.NotNil(t, tree[0].Subcategories)
	assert.Equal(t, "Development", tree[1].Name)
	assert.Equal(t, []models.CategoryRef{{ID: web.ID, Name: "Web"}}, tree[1].Subcategories)

	require.Len(t, pub.all, 3)
	assert.Equal(t, ws.OpCategoryCreate, pub.all[0].Op)
}

func TestCategoryServiceRejectsDeepNesting(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(repository.NewSQLiteCategoryRepo(db.Conn), newFakePublisher())
	ctx := context.Background()

	root, err := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Root"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Child", ParentID: &root.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateCategoryRequest{Name: "Grandchild", ParentID: &child.ID})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Create(ctx, &models.CreateCategoryRequest{Name: "Lost", ParentID: strPtr("missing")})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.Create(ctx, &models.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestCategoryServiceDelete(t *testing.T) {
	db := newTestDB(t)
	pub := newFakePublisher()
	svc := NewCategoryService(repository.NewSQLiteCategoryRepo(db.Conn), pub)
	ctx := context.Background()

	root, err := svc.Create(ctx, &models.CreateCategoryRequest{Name: "Root"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, root.ID))
	assert.ErrorIs(t, svc.Delete(ctx, root.ID), pkg.ErrNotFound)

	last := pub.all[len(pub.all)-1]
	assert.Equal(t, ws.OpCategoryDelete, last.Op)
	assert.Equal(t, ws.CategoryDeleteData{ID: root.ID}, last.Data)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree)
}
