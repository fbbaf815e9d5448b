// Package main: Service katmanı başlatma.
//
// initServices, token authority, email sender, rate limiter ve cache gibi
// paylaşılan bağımlılıkları da burada oluşturur.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/sigma/config"
	"github.com/akinalp/sigma/pkg/cache"
	"github.com/akinalp/sigma/pkg/crypto"
	"github.com/akinalp/sigma/pkg/email"
	"github.com/akinalp/sigma/pkg/password"
	"github.com/akinalp/sigma/pkg/ratelimit"
	"github.com/akinalp/sigma/pkg/token"
	"github.com/akinalp/sigma/services"
	"github.com/akinalp/sigma/ws"
)

// Services, tüm service instance'larını ve paylaşılan altyapıyı tutan container.
type Services struct {
	Auth         services.AuthService
	Category     services.CategoryService
	Course       services.CourseService
	Enrollment   services.EnrollmentService
	Voucher      services.VoucherService
	BankAccount  services.BankAccountService
	Profile      services.ProfileService
	TokenCleaner services.TokenCleaner

	Authority    *token.Authority
	LoginLimiter *ratelimit.LoginLimiter
	ClientIPs    *ratelimit.ProxyResolver

	resendCooldowns *cache.TTLCache[string, time.Time]
}

// Close, arka plan goroutine'lerini (limiter ve cache temizleyicileri) durdurur.
func (s *Services) Close() {
	s.LoginLimiter.Close()
	s.resendCooldowns.Close()
}

func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, error) {
	authority, err := token.NewAuthority(cfg.JWT.Secret, token.WithTTL(cfg.JWT.TokenTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to create token authority: %w", err)
	}

	key, err := crypto.ParseKey(cfg.Encryption.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
	}
	cipher, err := crypto.NewFieldCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}

	// ─── Email (opsiyonel) ───
	var sender email.EmailSender
	if cfg.Email.Enabled() {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		sender = email.NopSender{}
		log.Println("[main] email service disabled (RESEND_API_KEY / RESEND_FROM not set)")
	}

	clientIPs, err := ratelimit.NewProxyResolver(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	resendCooldowns := cache.New[string, time.Time](services.ResendCooldown, time.Minute)
	loginLimiter := ratelimit.NewLoginLimiter(5, 2*time.Minute)

	return &Services{
		Auth: services.NewAuthService(
			repos.User,
			repos.Instructor,
			repos.VerificationToken,
			authority,
			sender,
			resendCooldowns,
			password.DefaultParams,
		),
		Category:    services.NewCategoryService(repos.Category, hub),
		Course:      services.NewCourseService(repos.Course),
		Enrollment:  services.NewEnrollmentService(db, repos.Course, repos.Enrollment, repos.Voucher, repos.Certificate, hub),
		Voucher:     services.NewVoucherService(repos.Voucher),
		BankAccount: services.NewBankAccountService(repos.BankAccount, cipher),
		Profile: services.NewProfileService(
			repos.User,
			repos.Instructor,
			cfg.Upload.Dir,
			cfg.Upload.MaxSize,
		),
		TokenCleaner: services.NewTokenCleaner(repos.VerificationToken, time.Hour),

		Authority:       authority,
		LoginLimiter:    loginLimiter,
		ClientIPs:       clientIPs,
		resendCooldowns: resendCooldowns,
	}, nil
}
