package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// APIResponse, tüm API yanıtlarının ortak zarfı.
// Frontend her yanıtta success alanına bakar, data veya error'u okur.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı bir yanıt yazar.
func JSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, APIResponse{Success: true, Data: data})
}

// Error, domain error'unu uygun HTTP status ile yazar.
//
// 500'e düşen error'lar (bilinmeyen / DB hataları) loglanır ama mesajı
// client'a gönderilmez; client sadece "internal error" görür.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
		msg = ErrInternal.Error()
	}

	writeEnvelope(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorWithMessage, verilen status ve mesajla hata yanıtı yazar.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, APIResponse{Success: false, Error: message})
}

// StatusOf, domain error'unu HTTP status code'una eşler.
// Wrap edilmiş error'lar da errors.Is sayesinde doğru eşlenir.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}
