// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler ince bir köprüdür:
//  1. Request body'yi parse et (JSON → struct)
//  2. Service katmanını çağır
//  3. Sonucu pkg.JSON / pkg.Error ile yaz
//
// İş mantığı service'te, SQL repository'de kalır.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/ratelimit"
	"github.com/akinalp/sigma/pkg/token"
	"github.com/akinalp/sigma/services"
)

// AuthHandler, kayıt, login ve email doğrulama endpoint'leri.
// Öğrenci ve eğitmen akışları aynı handler'ı farklı hesap türüyle kullanır.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginLimiter
	clientIPs    *ratelimit.ProxyResolver
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler, constructor.
// loginLimiter nil ise rate limiting devre dışı kalır.
// clientIPs nil ise limit her zaman bağlantının RemoteAddr'ına uygulanır.
func NewAuthHandler(
	authService services.AuthService,
	loginLimiter *ratelimit.LoginLimiter,
	clientIPs *ratelimit.ProxyResolver,
	sessionTTL time.Duration,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		clientIPs:    clientIPs,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// Register godoc
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleUser)
}

// RegisterInstructor godoc
// POST /api/instructor/auth/register
func (h *AuthHandler) RegisterInstructor(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleInstructor)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, kind models.Role) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.authService.Register(r.Context(), kind, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, account)
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleUser)
}

// LoginInstructor godoc
// POST /api/instructor/auth/login
func (h *AuthHandler) LoginInstructor(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleInstructor)
}

// login, IP bazlı rate limit uygular, başarılı girişte session cookie'sini
// yazar ve sayacı sıfırlar. Token body'de de döner (Bearer kullanan client'lar).
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, kind models.Role) {
	ip := h.clientIPs.ClientIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfter(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s", ratelimit.FormatRetry(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), kind, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	http.SetCookie(w, token.SessionCookie(result.Token, h.sessionTTL, h.cookieSecure))
	pkg.JSON(w, http.StatusOK, result)
}

// Logout godoc
// POST /api/auth/logout
// Token iptal edilmez; sadece cookie temizlenir.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, token.ClearedCookie(h.cookieSecure))
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// GET /api/auth/me
// Sadece token'daki claims'i döner, DB'ye gidilmez.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	pkg.JSON(w, http.StatusOK, claims)
}

// VerifyEmail godoc
// POST /api/auth/verify-email
// Body: { "token": "..." }
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "email verified"})
}

// ResendVerification godoc
// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.authService.ResendVerification(r.Context(), claims); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "verification email sent"})
}
