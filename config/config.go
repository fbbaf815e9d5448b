// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Upload     UploadConfig
	Email      EmailConfig
	Encryption EncryptionConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string // Cookie auth için credential'lı CORS'a izin verilen origin'ler

	// TrustedProxies, X-Forwarded-For / X-Real-IP header'larına güvenilen
	// reverse proxy adresleri (IP veya CIDR). Boşsa header'lar yok sayılır
	// ve login rate limit'i bağlantının kendi adresine uygulanır.
	TrustedProxies []string
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // ör: ./data/sigma.db
}

// JWTConfig, session token ayarları.
type JWTConfig struct {
	Secret       string // Token imzalama anahtarı, zorunlu
	TokenTTL     time.Duration
	CookieSecure bool // session_token cookie'si Secure flag'i ile set edilir
}

// UploadConfig, dosya yükleme ayarları.
type UploadConfig struct {
	Dir     string
	MaxSize int64 // Byte cinsinden (varsayılan: 2MB)
}

// EmailConfig, Resend ayarları. APIKey boşsa email gönderimi devre dışıdır.
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	AppURL       string
}

// Enabled, email gönderimi için gereken tüm değerler tanımlı mı.
func (c EmailConfig) Enabled() bool {
	return c.ResendAPIKey != "" && c.FromEmail != ""
}

// EncryptionConfig, hassas alanların (banka hesap numarası) at-rest şifrelemesi.
type EncryptionConfig struct {
	Key string // 64 hex karakter = 32 byte AES-256 key
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; production'da gerçek env kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadDatabase, sadece veritabanı ayarlarını okur. seed gibi HTTP server
// başlatmayan komutlar JWT_SECRET ve ENCRYPTION_KEY olmadan çalışabilsin diye.
func LoadDatabase() DatabaseConfig {
	_ = godotenv.Load()
	return databaseFromEnv()
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Path: getEnv("DATABASE_PATH", "./data/sigma.db"),
	}
}

func fromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TOKEN_TTL_HOURS", "72"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL_HOURS: %w", err)
	}
	if ttlHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL_HOURS: must be positive, got %d", ttlHours)
	}

	cookieSecure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "2097152"), 10, 64) // 2MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	encKey := getEnv("ENCRYPTION_KEY", "")
	if len(encKey) != 64 {
		return nil, errors.New("ENCRYPTION_KEY environment variable is required (64 hex characters)")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		},
		Database: databaseFromEnv(),
		JWT: JWTConfig{
			Secret:       jwtSecret,
			TokenTTL:     time.Duration(ttlHours) * time.Hour,
			CookieSecure: cookieSecure,
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./data/uploads"),
			MaxSize: maxSize,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", ""),
			AppURL:       strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		},
		Encryption: EncryptionConfig{
			Key: encKey,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitList, virgülle ayrılmış listeyi boşlukları kırparak böler.
func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
