// Package services, business logic katmanını barındırır.
//
// Service'ler http.Request/Response bilmez ve SQL çalıştırmaz; domain
// modelleri alır, repository interface'leri üzerinden çalışır ve
// pkg.ErrX sentinel'larını sarmalayan error'lar döner.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/cache"
	"github.com/akinalp/sigma/pkg/email"
	"github.com/akinalp/sigma/pkg/password"
	"github.com/akinalp/sigma/pkg/token"
	"github.com/akinalp/sigma/repository"
)

const (
	// VerificationTTL, email doğrulama linkinin geçerlilik süresi.
	VerificationTTL = 24 * time.Hour
	// ResendCooldown, aynı hesaba iki doğrulama emaili arasındaki minimum süre.
	ResendCooldown = 90 * time.Second
)

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)

// AuthService, kayıt, login ve email doğrulama işlemleri.
//
// kind parametresi hesabın hangi tabloda yaşadığını seçer:
// RoleUser → users (admin hesapları dahil), RoleInstructor → instructors.
type AuthService interface {
	Register(ctx context.Context, kind models.Role, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, kind models.Role, req *models.LoginRequest) (*LoginResult, error)
	VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, claims *models.SessionClaims) error
}

// LoginResult, başarılı login yanıtı. Token cookie'ye de yazılır;
// body'de taşınması Bearer header kullanan eski client'lar içindir.
type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   models.Account `json:"account"`
}

type authService struct {
	userRepo        repository.AccountRepository
	instructorRepo  repository.AccountRepository
	tokenRepo       repository.VerificationTokenRepository
	authority       *token.Authority
	sender          email.EmailSender
	resendCooldowns *cache.TTLCache[string, time.Time]
	hashParams      password.Params
	now             func() time.Time
}

// NewAuthService, constructor.
//
// resendCooldowns: TTL'i ResendCooldown olan cache; anahtar "kind:accountID".
// hashParams: yeni hash'ler ve rehash kararı için argon2id parametreleri.
func NewAuthService(
	userRepo repository.AccountRepository,
	instructorRepo repository.AccountRepository,
	tokenRepo repository.VerificationTokenRepository,
	authority *token.Authority,
	sender email.EmailSender,
	resendCooldowns *cache.TTLCache[string, time.Time],
	hashParams password.Params,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		instructorRepo:  instructorRepo,
		tokenRepo:       tokenRepo,
		authority:       authority,
		sender:          sender,
		resendCooldowns: resendCooldowns,
		hashParams:      hashParams,
		now:             time.Now,
	}
}

// accountKind, rolü hesabın tablosuna indirger. Admin'ler users tablosundadır.
func accountKind(role models.Role) models.Role {
	if role == models.RoleInstructor {
		return models.RoleInstructor
	}
	return models.RoleUser
}

func cooldownKey(role models.Role, accountID string) string {
	return string(accountKind(role)) + ":" + accountID
}

func (s *authService) repoFor(kind models.Role) repository.AccountRepository {
	if accountKind(kind) == models.RoleInstructor {
		return s.instructorRepo
	}
	return s.userRepo
}

func (s *authService) Register(ctx context.Context, kind models.Role, req *models.RegisterRequest) (*models.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	hash, err := password.HashWithParams(req.Password, s.hashParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         accountKind(kind),
	}
	if err := s.repoFor(kind).Create(ctx, account); err != nil {
		return nil, err
	}

	// Kayıt email gönderilemese de başarılıdır; kullanıcı resend ile tekrar isteyebilir.
	if err := s.sendVerification(ctx, account); err != nil {
		log.Printf("[auth] verification mail for %s failed: %v", account.ID, err)
	}

	return account, nil
}

func (s *authService) Login(ctx context.Context, kind models.Role, req *models.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	repo := s.repoFor(kind)
	account, err := repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := password.Verify(req.Password, account.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if password.NeedsRehashFor(account.PasswordHash, s.hashParams) {
		s.rehash(ctx, repo, account, req.Password)
	}

	claims := models.SessionClaims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	}
	tok, err := s.authority.IssueSession(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:     tok,
		ExpiresAt: s.now().Add(s.authority.TTL()),
		Account:   *account,
	}, nil
}

// rehash, legacy bcrypt veya zayıf parametreli hash'i günceller.
// Başarısızlık login'i bozmaz, sadece loglanır.
func (s *authService) rehash(ctx context.Context, repo repository.AccountRepository, account *models.Account, plain string) {
	hash, err := password.HashWithParams(plain, s.hashParams)
	if err != nil {
		log.Printf("[auth] rehash failed for %s: %v", account.ID, err)
		return
	}
	if err := repo.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		log.Printf("[auth] rehash update failed for %s: %v", account.ID, err)
		return
	}
	account.PasswordHash = hash
}

func (s *authService) VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	stored, err := s.tokenRepo.GetByHash(ctx, hashToken(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired verification token", pkg.ErrBadRequest)
		}
		return err
	}

	if !s.now().Before(stored.ExpiresAt) {
		if err := s.tokenRepo.DeleteByAccount(ctx, stored.AccountID, stored.AccountRole); err != nil {
			log.Printf("[auth] failed to drop expired tokens for %s: %v", stored.AccountID, err)
		}
		return fmt.Errorf("%w: invalid or expired verification token", pkg.ErrBadRequest)
	}

	if err := s.repoFor(stored.AccountRole).MarkVerified(ctx, stored.AccountID, s.now()); err != nil {
		return fmt.Errorf("failed to mark account verified: %w", err)
	}
	s.resendCooldowns.Delete(cooldownKey(stored.AccountRole, stored.AccountID))

	return s.tokenRepo.DeleteByAccount(ctx, stored.AccountID, stored.AccountRole)
}

func (s *authService) ResendVerification(ctx context.Context, claims *models.SessionClaims) error {
	account, err := s.repoFor(claims.Role).GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if account.VerifiedAt != nil {
		return fmt.Errorf("%w: email already verified", pkg.ErrBadRequest)
	}

	key := cooldownKey(account.Role, account.ID)
	if wait := s.resendCooldowns.Remaining(key); wait > 0 {
		return fmt.Errorf("%w: please wait %d seconds before requesting another email",
			pkg.ErrTooManyRequests, int((wait+time.Second-1)/time.Second))
	}

	if err := s.sendVerification(ctx, account); err != nil {
		return err
	}
	s.resendCooldowns.Set(key, s.now())
	return nil
}

// sendVerification, hesabın eski token'larını siler, yenisini üretip gönderir.
func (s *authService) sendVerification(ctx context.Context, account *models.Account) error {
	kind := accountKind(account.Role)

	plain, err := generateToken()
	if err != nil {
		return err
	}

	if err := s.tokenRepo.DeleteByAccount(ctx, account.ID, kind); err != nil {
		return err
	}

	if err := s.tokenRepo.Create(ctx, &models.VerificationToken{
		AccountID:   account.ID,
		AccountRole: kind,
		TokenHash:   hashToken(plain),
		ExpiresAt:   s.now().Add(VerificationTTL),
	}); err != nil {
		return err
	}

	if err := s.sender.SendVerification(ctx, account.Email, account.Name, plain); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// generateToken, 32 byte rastgele değerin hex hali (64 karakter).
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashToken, DB'de saklanan SHA-256 hex özeti.
func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
