package models

import "time"

// Enrollment, bir kullanıcının bir kursa kaydı.
// (user_id, course_id) çifti benzersizdir.
type Enrollment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	CourseID    string     `json:"course_id"`
	PricePaid   int64      `json:"price_paid"`
	VoucherCode *string    `json:"voucher_code"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EnrollRequest, kayıt isteği. VoucherCode opsiyonel.
type EnrollRequest struct {
	VoucherCode string `json:"voucher_code"`
}

// Certificate, tamamlanan bir kaydın sertifikası.
// Number public doğrulama için kullanılır.
type Certificate struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	IssuedAt     time.Time `json:"issued_at"`
}

// CertificateVerification, public doğrulama endpoint'inin yanıtı.
// Sertifika sahibinin email'i dışarı verilmez.
type CertificateVerification struct {
	Number      string    `json:"number"`
	HolderName  string    `json:"holder_name"`
	CourseTitle string    `json:"course_title"`
	IssuedAt    time.Time `json:"issued_at"`
}
