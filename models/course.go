package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Course, bir eğitmenin yayınladığı kurs.
// Price en küçük para biriminde tutulur (kuruş/sen), float yok.
type Course struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructor_id"`
	CategoryID   *string   `json:"category_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateCourseRequest, eğitmenin yeni kurs oluştururken gönderdiği body.
type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	CategoryID  *string `json:"category_id"`
}

func (r *CreateCourseRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if err := validateCourseTitle(r.Title); err != nil {
		return err
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// UpdateCourseRequest, kısmi güncelleme. nil alanlar değişmez.
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	CategoryID  *string `json:"category_id"`
	Published   *bool   `json:"published"`
}

func (r *UpdateCourseRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if err := validateCourseTitle(trimmed); err != nil {
			return err
		}
		r.Title = &trimmed
	}
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// Apply, güncellemeyi kursa uygular.
func (r *UpdateCourseRequest) Apply(c *Course) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Price != nil {
		c.Price = *r.Price
	}
	if r.CategoryID != nil {
		if *r.CategoryID == "" {
			c.CategoryID = nil
		} else {
			id := *r.CategoryID
			c.CategoryID = &id
		}
	}
	if r.Published != nil {
		c.Published = *r.Published
	}
}

func validateCourseTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 3 || n > 200 {
		return fmt.Errorf("title must be between 3 and 200 characters")
	}
	return nil
}
