package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/repository"
)

// pngHeader, http.DetectContentType'ın image/png olarak tanıdığı imza.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadAvatar(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(db.Conn)
	acc := seedAccount(t, users, "ada@example.com", models.RoleUser)
	dir := filepath.Join(t.TempDir(), "uploads")

	svc := NewProfileService(users, repository.NewSQLiteInstructorRepo(db.Conn), dir, 1024)
	claims := &models.SessionClaims{UserID: acc.ID, Role: models.RoleUser}

	first, err := svc.UploadAvatar(ctx, claims, "../../My Photo!.jpeg", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.NotNil(t, first.AvatarURL)
	assert.True(t, strings.HasPrefix(*first.AvatarURL, UploadURLPrefix))
	assert.True(t, strings.HasSuffix(*first.AvatarURL, "_MyPhoto.png"))

	firstPath := filepath.Join(dir, strings.TrimPrefix(*first.AvatarURL, UploadURLPrefix))
	_, err = os.Stat(firstPath)
	require.NoError(t, err)

	second, err := svc.UploadAvatar(ctx, claims, "next.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.NotEqual(t, *first.AvatarURL, *second.AvatarURL)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err))

	stored, err := users.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, second.AvatarURL, stored.AvatarURL)
}

func TestUploadAvatarRejections(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	instructors := repository.NewSQLiteInstructorRepo(db.Conn)
	acc := seedAccount(t, instructors, "teach@example.com", models.RoleInstructor)

	svc := NewProfileService(repository.NewSQLiteUserRepo(db.Conn), instructors, t.TempDir(), 32)
	claims := &models.SessionClaims{UserID: acc.ID, Role: models.RoleInstructor}

	_, err := svc.UploadAvatar(ctx, claims, "notes.txt", strings.NewReader("just some plain text"))
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = svc.UploadAvatar(ctx, claims, "big.png", bytes.NewReader(append(pngHeader, make([]byte, 64)...)))
	assert.ErrorIs(t, err, pkg.ErrPayloadTooLarge)

	_, err = svc.UploadAvatar(ctx, claims, "empty.png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// Kullanıcı token'ı eğitmen tablosunda aranmaz
	_, err = svc.UploadAvatar(ctx, &models.SessionClaims{UserID: acc.ID, Role: models.RoleUser}, "a.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd.png", sanitizeFilename("../../etc/passwd", ".png"))
	assert.Equal(t, "avatar.jpg", sanitizeFilename("çğü.gif", ".jpg"))
	assert.Equal(t, "shot.webp", sanitizeFilename(`C:\tmp\shot.png`, ".webp"))
}
