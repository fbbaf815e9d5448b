package services

import "github.com/akinalp/sigma/models"

// BuildCategoryTree, isme göre sıralı düz kategori listesini iki seviyeli
// görünüme çevirir.
//
// Girdi sırası korunur, yeniden sıralama yapılmaz. Parent'ı bir kök
// kategori olmayan kayıtlar (olmayan id, başka bir alt kategori) sessizce
// düşer; hata dönmez.
func BuildCategoryTree(categories []models.Category) []models.OrganizedCategory {
	roots := make([]models.OrganizedCategory, 0, len(categories))
	index := make(map[string]int, len(categories))

	for _, c := range categories {
		if c.ParentID != nil {
			continue
		}
		index[c.ID] = len(roots)
		roots = append(roots, models.OrganizedCategory{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: []models.CategoryRef{},
		})
	}

	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		i, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		roots[i].Subcategories = append(roots[i].Subcategories, models.CategoryRef{
			ID:   c.ID,
			Name: c.Name,
		})
	}

	return roots
}
