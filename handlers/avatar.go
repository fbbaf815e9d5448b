// Package handlers: AvatarHandler: profil resmi yükleme ve yüklenen dosyaları servis etme.
//
// İşlem akışı:
//  1. Body MaxBytesReader ile sınırlanır, multipart "file" alanı okunur
//  2. ProfileService tür (ilk byte'lar) ve boyut kontrolü yapar, diske yazar
//  3. Hesabın avatar_url'i güncellenir, eski dosya silinir
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/services"
)

// multipartOverhead, multipart sınırları ve header'ları için dosya limitine eklenen pay.
const multipartOverhead = 64 << 10

type AvatarHandler struct {
	profileService services.ProfileService
	uploadDir      string
	maxSize        int64
}

func NewAvatarHandler(profileService services.ProfileService, uploadDir string, maxSize int64) *AvatarHandler {
	return &AvatarHandler{
		profileService: profileService,
		uploadDir:      uploadDir,
		maxSize:        maxSize,
	}
}

// Upload godoc
// POST /api/users/me/avatar
// Content-Type: multipart/form-data, alan adı "file".
// Öğrenci ve eğitmen hesapları aynı endpoint'i kullanır; tablo token'daki rolden seçilir.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			pkg.ErrorWithMessage(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	account, err := h.profileService.UploadAvatar(r.Context(), claims, header.Filename, file)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, account)
}

// ServeUpload godoc
// GET /api/uploads/{file}
// Sadece düz dosya isimleri kabul edilir; alt dizin ve traversal reddedilir.
func (h *AvatarHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		http.NotFound(w, r)
		return
	}

	r.URL.Path = "/" + name
	http.FileServer(http.Dir(h.uploadDir)).ServeHTTP(w, r)
}
