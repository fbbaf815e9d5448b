package services

import (
	"encoding/json"
	"testing"

	"github.com/akinalp/sigma/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildCategoryTreeBasic(t *testing.T) {
	in := []models.Category{
		{ID: "1", Name: "Art"},
		{ID: "2", Name: "Art>Painting", ParentID: strPtr("1")},
		{ID: "3", Name: "Music"},
	}

	got := BuildCategoryTree(in)

	want := []models.OrganizedCategory{
		{ID: "1", Name: "Art", Subcategories: []models.CategoryRef{{ID: "2", Name: "Art>Painting"}}},
		{ID: "3", Name: "Music", Subcategories: []models.CategoryRef{}},
	}
	assert.Equal(t, want, got)
}

func TestBuildCategoryTreeEmptySubcategoriesEncodeAsArray(t *testing.T) {
	got := BuildCategoryTree([]models.Category{{ID: "3", Name: "Music"}})

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"3","name":"Music","subcategories":[]}]`, string(b))
}

func TestBuildCategoryTreeDropsOrphans(t *testing.T) {
	in := []models.Category{
		{ID: "1", Name: "Art"},
		{ID: "2", Name: "Art>Painting", ParentID: strPtr("1")},
		{ID: "4", Name: "Ghost", ParentID: strPtr("404")},
		// Alt kategoriye bağlı torun: iki seviye varsayımı gereği düşer.
		{ID: "5", Name: "Oil", ParentID: strPtr("2")},
	}

	got := BuildCategoryTree(in)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, []models.CategoryRef{{ID: "2", Name: "Art>Painting"}}, got[0].Subcategories)

	for _, root := range got {
		assert.NotEqual(t, "4", root.ID)
		assert.NotEqual(t, "5", root.ID)
		for _, sub := range root.Subcategories {
			assert.NotEqual(t, "4", sub.ID)
			assert.NotEqual(t, "5", sub.ID)
		}
	}
}

func TestBuildCategoryTreeKeepsInputOrder(t *testing.T) {
	// Girdi isme göre sıralı değil; çıktı yine de girdi sırasını izlemeli.
	in := []models.Category{
		{ID: "m", Name: "Music"},
		{ID: "c2", Name: "Zeta", ParentID: strPtr("a")},
		{ID: "a", Name: "Art"},
		{ID: "c1", Name: "Alpha", ParentID: strPtr("a")},
	}

	got := BuildCategoryTree(in)

	require.Len(t, got, 2)
	assert.Equal(t, "m", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, []models.CategoryRef{{ID: "c2", Name: "Zeta"}, {ID: "c1", Name: "Alpha"}}, got[1].Subcategories)
}

func TestBuildCategoryTreeIdempotent(t *testing.T) {
	in := []models.Category{
		{ID: "1", Name: "Art"},
		{ID: "2", Name: "Art>Painting", ParentID: strPtr("1")},
		{ID: "3", Name: "Music"},
		{ID: "9", Name: "Orphan", ParentID: strPtr("x")},
	}

	first := BuildCategoryTree(in)
	second := BuildCategoryTree(in)
	assert.Equal(t, first, second)
}

func TestBuildCategoryTreeEmpty(t *testing.T) {
	got := BuildCategoryTree(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
