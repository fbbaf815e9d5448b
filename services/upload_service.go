package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

// UploadURLPrefix, yüklenen dosyaların servis edildiği path.
const UploadURLPrefix = "/api/uploads/"

// allowedImageMimes, profil resmi olarak kabul edilen türler.
// Tür, client'ın Content-Type header'ından değil dosyanın ilk byte'larından tespit edilir.
var allowedImageMimes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProfileService, profil resmi yükleme işlemleri.
type ProfileService interface {
	// UploadAvatar, resmi diske yazar, eski resmi siler ve hesabın avatar_url'ini günceller.
	UploadAvatar(ctx context.Context, claims *models.SessionClaims, filename string, file io.Reader) (*models.Account, error)
}

type profileService struct {
	userRepo       repository.AccountRepository
	instructorRepo repository.AccountRepository
	uploadDir      string
	maxSize        int64
}

func NewProfileService(
	userRepo repository.AccountRepository,
	instructorRepo repository.AccountRepository,
	uploadDir string,
	maxSize int64,
) ProfileService {
	return &profileService{
		userRepo:       userRepo,
		instructorRepo: instructorRepo,
		uploadDir:      uploadDir,
		maxSize:        maxSize,
	}
}

func (s *profileService) UploadAvatar(ctx context.Context, claims *models.SessionClaims, filename string, file io.Reader) (*models.Account, error) {
	repo := s.userRepo
	if accountKind(claims.Role) == models.RoleInstructor {
		repo = s.instructorRepo
	}

	account, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	// maxSize+1 okunur; fazlası varsa dosya limiti aşıyor demektir.
	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file", pkg.ErrBadRequest)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: file too large (max %d bytes)", pkg.ErrPayloadTooLarge, s.maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", pkg.ErrBadRequest)
	}

	mime := http.DetectContentType(data)
	ext, ok := allowedImageMimes[mime]
	if !ok {
		return nil, fmt.Errorf("%w: only image files are allowed (jpeg, png, gif, webp)", pkg.ErrBadRequest)
	}

	diskName := uuid.NewString() + "_" + sanitizeFilename(filename, ext)
	destPath := filepath.Join(s.uploadDir, diskName)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := writeFile(destPath, data); err != nil {
		return nil, err
	}

	url := UploadURLPrefix + diskName
	if err := repo.UpdateAvatar(ctx, account.ID, &url); err != nil {
		os.Remove(destPath)
		return nil, err
	}

	s.removeOld(account.AvatarURL)
	account.AvatarURL = &url
	return account, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return f.Close()
}

// removeOld, önceki avatar dosyasını siler. Sadece upload dizinindeki
// dosyalar silinir; dış URL'lere dokunulmaz.
func (s *profileService) removeOld(oldURL *string) {
	if oldURL == nil || !strings.HasPrefix(*oldURL, UploadURLPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(*oldURL, UploadURLPrefix))
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("[upload] failed to remove old avatar %s: %v", name, err)
	}
}

// sanitizeFilename, path bileşenlerini ve güvensiz karakterleri atar,
// uzantıyı tespit edilen türe göre yeniden yazar.
func sanitizeFilename(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, base)

	if len(base) > 64 {
		base = base[:64]
	}
	if base == "" {
		base = "avatar"
	}
	return base + ext
}
