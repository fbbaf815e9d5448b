// Package models, domain modellerini ve request struct'larını tanımlar.
//
// json tag'leri API yanıtlarının şeklini belirler; PasswordHash gibi
// hassas alanlar `json:"-"` ile yanıtlardan dışlanır.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Role, bir hesabın yapabileceği işlemleri belirleyen kapalı küme etiketi.
type Role string

const (
	RoleUser       Role = "user"
	RoleInstructor Role = "instructor"
	// RoleAdmin yetki kontrollerinde kullanılır ama hiçbir login akışı
	// bu rolü vermez; admin hesapları veritabanında elle işaretlenir.
	RoleAdmin Role = "admin"
)

// Valid, rolün bilinen değerlerden biri olup olmadığını döner.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Account, users veya instructors tablosundaki bir kayıt.
// İki tablo aynı şemayı paylaşır; Role alanı kaydın hangi tablodan
// geldiğini değil, hesabın rolünü taşır.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	AvatarURL    *string    `json:"avatar_url"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	VerifiedAt   *time.Time `json:"verified_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, basit email format kontrolü için kullanılan regex.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// RegisterRequest, kullanıcı ve eğitmen kaydında gelen body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate, alanları normalize eder ve kuralları kontrol eder:
//   - Email: geçerli format, küçük harfe çevrilir
//   - Password: en az 8 karakter
//   - Name: 1-64 karakter
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 64 {
		return fmt.Errorf("name must be between 1 and 64 characters")
	}

	return nil
}

// LoginRequest, login body'si.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
