package middleware

import (
	"net/http"

	"github.com/akinalp/sigma/handlers"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
)

// RoleMiddleware, route'a özgü rol kontrolü.
//
// AuthMiddleware'den SONRA çalışır; context'te claims mevcuttur.
// Rol izinli değilse 403 döner.
//
// Kullanım:
//
//	authMw.Require(roleMw.Require(models.RoleAdmin)(http.HandlerFunc(h.Create)))
type RoleMiddleware struct {
	recorder RejectionRecorder
}

func NewRoleMiddleware(recorder RejectionRecorder) *RoleMiddleware {
	return &RoleMiddleware{recorder: recorder}
}

// Require, claims'teki rolün verilen rollerden biri olmasını şart koşar.
func (m *RoleMiddleware) Require(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.ClaimsFromContext(r.Context())
			if !ok {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "token missing")
				return
			}

			if !claims.HasRole(roles...) {
				if m.recorder != nil {
					m.recorder.RecordRejection("forbidden")
				}
				pkg.ErrorWithMessage(w, http.StatusForbidden, "role not permitted")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
