package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/services"
)

// EnrollmentHandler, kayıt, tamamlama ve sertifika doğrulama endpoint'leri.
type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll godoc
// POST /api/courses/{id}/enroll
// Body opsiyonel: { "voucher_code": "..." }
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), claims.UserID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, enrollment)
}

// ListMine godoc
// GET /api/enrollments
func (h *EnrollmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, enrollments)
}

// Complete godoc
// POST /api/instructor/enrollments/{id}/complete
func (h *EnrollmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	cert, err := h.enrollmentService.Complete(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, cert)
}

// VerifyCertificate godoc
// GET /api/certificates/{number}
func (h *EnrollmentHandler) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	verification, err := h.enrollmentService.VerifyCertificate(r.Context(), r.PathValue("number"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, verification)
}
