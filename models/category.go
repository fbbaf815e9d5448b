package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category, categories tablosundaki düz kayıt.
// ParentID doluysa başka bir kök kategorinin ID'sini gösterir;
// hiyerarşi en fazla iki seviyedir.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent,omitempty"`
}

// CategoryRef, alt kategori girdisi: sadece id ve isim.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrganizedCategory, UI'ın tükettiği iç içe görünüm.
// Her istekte yeniden üretilir, saklanmaz.
type OrganizedCategory struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []CategoryRef `json:"subcategories"`
}

// CreateCategoryRequest, kategori oluşturma body'si.
type CreateCategoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("category name must be between 1 and 100 characters")
	}

	if r.ParentID != nil {
		trimmed := strings.TrimSpace(*r.ParentID)
		if trimmed == "" {
			r.ParentID = nil
		} else {
			r.ParentID = &trimmed
		}
	}

	return nil
}
