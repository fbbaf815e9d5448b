package models

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims, session token'ının payload'ı.
//
// iat ve exp alanları gömülü RegisteredClaims'ten gelir ve imzalama
// sırasında damgalanır. Claims bir kez imzalandıktan sonra değişmez;
// rol veya email değişikliği yeni bir token gerektirir.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// HasRole, claims'teki rolün izin verilen rollerden biri olup olmadığını döner.
// Route'a özgü yetki kontrolü (403) bu metodla yapılır.
func (c *SessionClaims) HasRole(allowed ...Role) bool {
	return slices.Contains(allowed, c.Role)
}
