// Package token, session token'larını imzalayan ve doğrulayan Token Authority'yi barındırır.
//
// JWT nedir?
// Üç parçalı, nokta ile ayrılmış bir string: header.payload.signature.
// Payload (claims) base64 ile kodlanır, şifrelenmez; herkes okuyabilir.
// Güvenlik imzadan gelir: HS256 ile secret kullanılarak üretilen imza,
// payload'ın bir byte'ı bile değişirse tutmaz. Bu sayede sunucu token'ı
// DB'ye sormadan doğrulayabilir (stateless auth).
//
// Bedeli: token süresi dolana kadar geçerlidir. Logout sadece cookie'yi
// siler, token'ı iptal etmez; rol değişikliği bir sonraki login'de yansır.
//
// Authority durum tutmaz: secret başlangıçta bir kez verilir ve değişmez,
// saat (clock) enjekte edilir. Bu yüzden aynı *Authority birden fazla
// goroutine'den kilitsiz kullanılabilir.
//
// Üç işlem sunar:
//   - Issue: claims'e iat/exp damgalar, HS256 ile imzalar
//   - Verify: Valid / Expired / Invalid sonuçlarından tam olarak birini döner
//   - AuthorizeRequest: request'ten token'ı okur, Verify eder, reddi sınıflandırır
//
// Authority route'a özgü rol kurallarını bilmez. Rol kontrolü çağıran
// handler'ın (veya route'a bağlanan RoleMiddleware'in) işidir.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akinalp/sigma/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL, login sonrası verilen token'ın ömrü (3 gün).
const DefaultTTL = 72 * time.Hour

// CookieName, session token'ını taşıyan cookie'nin adı.
const CookieName = "session_token"

// ErrSecretRequired, boş secret ile Authority oluşturulmaya çalışıldığında döner.
var ErrSecretRequired = errors.New("token signing secret is required")

// Authority, session token'larını imzalar ve doğrular.
type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option, Authority'yi yapılandırır.
type Option func(*Authority)

// WithTTL, IssueSession'ın kullandığı ömrü değiştirir.
func WithTTL(ttl time.Duration) Option {
	return func(a *Authority) { a.ttl = ttl }
}

// WithClock, zaman kaynağını değiştirir. Testlerde sabit saat için kullanılır.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) { a.now = now }
}

// NewAuthority, secret ile yeni bir Authority oluşturur.
// Secret boşsa hata döner; varsayılan bir secret'a düşülmez.
func NewAuthority(secret string, opts ...Option) (*Authority, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}

	a := &Authority{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// TTL, IssueSession'ın kullandığı token ömrünü döner.
func (a *Authority) TTL() time.Duration {
	return a.ttl
}

// Issue, claims'e iat = now ve exp = now + ttl damgalar ve HS256 ile imzalar.
//
// Girdi claims'in UserID, Email ve Role alanları kullanılır; diğer
// registered claim'ler ezilir. Girdi değiştirilmez (değer olarak alınır).
func (a *Authority) Issue(claims models.SessionClaims, ttl time.Duration) (string, error) {
	now := a.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// IssueSession, yapılandırılmış TTL ile Issue çağırır.
func (a *Authority) IssueSession(claims models.SessionClaims) (string, error) {
	return a.Issue(claims, a.ttl)
}

// Verify, token'ın imzasını ve süresini kontrol eder. I/O yapmaz.
//
// İmza önce doğrulanır; Expired sadece imzası geçerli token'lar için döner.
// exp claim'i zorunludur ve now >= exp olduğunda token süresi dolmuş sayılır.
func (a *Authority) Verify(tokenString string) Verification {
	claims := &models.SessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, a.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(a.now),
	)

	switch {
	case err == nil:
		if claims.UserID == "" || !claims.Role.Valid() {
			return Verification{Outcome: OutcomeInvalid}
		}
		return Verification{Outcome: OutcomeValid, Claims: claims}
	case errors.Is(err, jwt.ErrTokenExpired):
		return Verification{Outcome: OutcomeExpired}
	default:
		return Verification{Outcome: OutcomeInvalid}
	}
}

// AuthorizeRequest, her korumalı route'un ilk adımıdır.
//
// Token önce session_token cookie'sinden, yoksa Authorization: Bearer
// header'ından okunur. DB'ye gidilmez: token'daki claims imza anındaki
// haliyle kabul edilir ve token süresi dolana kadar geçerli kalır.
func (a *Authority) AuthorizeRequest(r *http.Request) Authorization {
	return a.AuthorizeToken(FromRequest(r))
}

// AuthorizeToken, ham token'ı Authorization'a çevirir: boş token
// TokenMissing, Verify sonuçları ise TokenExpired / TokenInvalid / claims olur.
// Token'ı request dışı bir yerden (ör. WebSocket ?token=) alan çağıranlar
// bunu doğrudan kullanır.
func (a *Authority) AuthorizeToken(raw string) Authorization {
	if raw == "" {
		return Authorization{Rejection: RejectTokenMissing}
	}

	v := a.Verify(raw)
	switch v.Outcome {
	case OutcomeValid:
		return Authorization{Claims: v.Claims}
	case OutcomeExpired:
		return Authorization{Rejection: RejectTokenExpired}
	default:
		return Authorization{Rejection: RejectTokenInvalid}
	}
}

// FromRequest, request'ten ham token string'ini çıkarır; yoksa "" döner.
func FromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	// Eski istemciler token'ı header ile gönderiyor.
	if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(raw)
	}
	return ""
}

func (a *Authority) keyFunc(*jwt.Token) (any, error) {
	return a.secret, nil
}
