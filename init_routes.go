// Package main: HTTP route registration.
//
// Middleware chain helper'ları:
//   - auth: session token doğrulaması (rol fark etmez)
//   - authRole: auth + route'a özgü rol kontrolü (403)
package main

import (
	"net/http"

	"github.com/akinalp/sigma/handlers"
	"github.com/akinalp/sigma/middleware"
	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg/token"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(mux *http.ServeMux, h *Handlers, authority *token.Authority, recorder middleware.RejectionRecorder) {
	authMw := middleware.NewAuthMiddleware(authority, recorder)
	roleMw := middleware.NewRoleMiddleware(recorder)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}
	authRole := func(handler http.HandlerFunc, roles ...models.Role) http.Handler {
		return authMw.Require(roleMw.Require(roles...)(handler))
	}

	// Health
	mux.HandleFunc("GET /api/health", handlers.Health)

	// Auth: öğrenci
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/auth/verify-email", h.Auth.VerifyEmail)
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.Handle("POST /api/auth/resend-verification", auth(h.Auth.ResendVerification))

	// Auth: eğitmen
	mux.HandleFunc("POST /api/instructor/auth/register", h.Auth.RegisterInstructor)
	mux.HandleFunc("POST /api/instructor/auth/login", h.Auth.LoginInstructor)

	// Profil
	mux.Handle("POST /api/users/me/avatar", authRole(h.Avatar.Upload, models.RoleUser, models.RoleInstructor))
	mux.HandleFunc("GET /api/uploads/{file}", h.Avatar.ServeUpload)

	// Kategoriler
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.Handle("POST /api/categories", authRole(h.Category.Create, models.RoleAdmin))
	mux.Handle("DELETE /api/categories/{id}", authRole(h.Category.Delete, models.RoleAdmin))

	// Kurslar: public katalog
	mux.HandleFunc("GET /api/courses", h.Course.List)
	mux.HandleFunc("GET /api/courses/{id}", h.Course.Get)
	mux.Handle("POST /api/courses/{id}/enroll", authRole(h.Enrollment.Enroll, models.RoleUser))

	// Kayıtlar ve sertifikalar
	mux.Handle("GET /api/enrollments", authRole(h.Enrollment.ListMine, models.RoleUser))
	mux.HandleFunc("GET /api/certificates/{number}", h.Enrollment.VerifyCertificate)

	// Kuponlar
	mux.Handle("GET /api/vouchers/{code}", authRole(h.Voucher.Get, models.RoleUser))

	// Eğitmen paneli
	mux.Handle("GET /api/instructor/courses", authRole(h.Course.ListMine, models.RoleInstructor))
	mux.Handle("POST /api/instructor/courses", authRole(h.Course.Create, models.RoleInstructor))
	mux.Handle("PATCH /api/instructor/courses/{id}", authRole(h.Course.Update, models.RoleInstructor))
	mux.Handle("POST /api/instructor/enrollments/{id}/complete", authRole(h.Enrollment.Complete, models.RoleInstructor))
	mux.Handle("GET /api/instructor/bank-accounts", authRole(h.BankAccount.List, models.RoleInstructor))
	mux.Handle("POST /api/instructor/bank-accounts", authRole(h.BankAccount.Create, models.RoleInstructor))

	// WebSocket: cookie veya ?token= ile kendi içinde doğrulanır
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
