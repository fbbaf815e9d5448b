// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern nedir?
// Her HTTP request, handler'a ulaşmadan önce bir veya daha fazla middleware'dan
// geçer. Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// "next" zincirdeki bir sonraki handler'dır. Middleware kendi işini yapar
// (ör: token doğrula), sonra next'i çağırır. Hata varsa next'i çağırmaz,
// yanıtı kendisi yazar ve request burada durur.
//
// Bu projedeki zincir:
//
//	CORS → Metrics → mux → Auth → RoleMiddleware → Handler
//
// Auth sadece "kim olduğunu" doğrular (401). "Bu route'a girebilir mi"
// sorusu ayrı bir adımdır ve RoleMiddleware'de cevaplanır (403).
package middleware

import (
	"net/http"

	"github.com/akinalp/sigma/handlers"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/token"
)

// RejectionRecorder, reddedilen istekleri sebep etiketiyle sayar.
// *metrics.Metrics bu interface'i karşılar; nil olabilir.
type RejectionRecorder interface {
	RecordRejection(reason string)
}

// AuthMiddleware, session token doğrulama middleware'ı.
//
// Kimlik doğrulama tamamen stateless'tır: token imzası ve süresi kontrol
// edilir, DB'ye gidilmez. Claims token verildiği andaki haliyle geçerlidir.
type AuthMiddleware struct {
	authority *token.Authority
	recorder  RejectionRecorder
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authority *token.Authority, recorder RejectionRecorder) *AuthMiddleware {
	return &AuthMiddleware{
		authority: authority,
		recorder:  recorder,
	}
}

// Require, geçerli bir session token'ı zorunlu kılar.
//
// Token önce session_token cookie'sinden, yoksa Authorization: Bearer
// header'ından okunur. Red durumunda 401 ve sebep mesajı döner
// ("token missing", "token expired", "token invalid").
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := m.authority.AuthorizeRequest(r)
		if !auth.OK() {
			m.record(auth.Rejection.String())
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, auth.Rejection.Message())
			return
		}

		ctx := handlers.WithClaims(r.Context(), auth.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) record(reason string) {
	if m.recorder != nil {
		m.recorder.RecordRejection(reason)
	}
}
