package token

import (
	"net/http"
	"time"
)

// SessionCookie, login yanıtında set edilen cookie'yi oluşturur.
// HttpOnly: JavaScript token'ı okuyamaz. Max-Age token ömrüyle aynıdır.
func SessionCookie(value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie, logout'ta cookie'yi silen boş cookie'yi döner.
// Token'ın kendisi iptal edilmez; süresi dolana kadar geçerli kalır.
func ClearedCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
