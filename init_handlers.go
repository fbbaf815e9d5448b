// Package main: Handler katmanı başlatma.
package main

import (
	"github.com/akinalp/sigma/config"
	"github.com/akinalp/sigma/handlers"
	"github.com/akinalp/sigma/pkg/metrics"
	"github.com/akinalp/sigma/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Category    *handlers.CategoryHandler
	Course      *handlers.CourseHandler
	Enrollment  *handlers.EnrollmentHandler
	Voucher     *handlers.VoucherHandler
	BankAccount *handlers.BankAccountHandler
	Avatar      *handlers.AvatarHandler
	WS          *ws.Handler
}

func initHandlers(svcs *Services, hub *ws.Hub, m *metrics.Metrics, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, svcs.LoginLimiter, svcs.ClientIPs, cfg.JWT.TokenTTL, cfg.JWT.CookieSecure),
		Category:    handlers.NewCategoryHandler(svcs.Category),
		Course:      handlers.NewCourseHandler(svcs.Course),
		Enrollment:  handlers.NewEnrollmentHandler(svcs.Enrollment),
		Voucher:     handlers.NewVoucherHandler(svcs.Voucher),
		BankAccount: handlers.NewBankAccountHandler(svcs.BankAccount),
		Avatar:      handlers.NewAvatarHandler(svcs.Profile, cfg.Upload.Dir, cfg.Upload.MaxSize),
		WS:          ws.NewHandler(hub, svcs.Authority, m, cfg.Server.CORSOrigins),
	}
}
