package handlers

import (
	"context"
	"net/http"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

type contextKey string

// ClaimsContextKey, AuthMiddleware'in doğrulanmış SessionClaims'i koyduğu anahtar.
const ClaimsContextKey contextKey = "claims"

// WithClaims, claims'i context'e ekler.
func WithClaims(ctx context.Context, claims *models.SessionClaims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext, AuthMiddleware'in eklediği claims'i döner.
func ClaimsFromContext(ctx context.Context) (*models.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*models.SessionClaims)
	return claims, ok && claims != nil
}

// requireClaims, claims yoksa 401 yazar ve false döner.
// Route auth middleware'siz bağlanmışsa burası yakalar.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.SessionClaims, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "token missing")
		return nil, false
	}
	return claims, true
}
