package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"
)

// RequestObserver, tamamlanan istekleri kaydeder. *metrics.Metrics karşılar.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// statusRecorder, handler'ın yazdığı status code'u yakalar.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack, /ws upgrade'i için. Hijack edilen bağlantı 101 olarak sayılır.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(s.ResponseWriter).Hijack()
	if err == nil {
		s.status = http.StatusSwitchingProtocols
	}
	return conn, rw, err
}

// Metrics, her isteğin süresini ve status'unu route pattern'i etiketiyle kaydeder.
//
// ServeMux eşleşen pattern'i r.Pattern'e yazar; middleware mux'ı doğrudan
// sarmalıdır. Eşleşmeyen istekler "unmatched" etiketini alır.
func Metrics(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveRequest(r.Method, route, rec.status, time.Since(start))
		})
	}
}
