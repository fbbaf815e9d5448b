// Package ws, WebSocket üzerinden gerçek zamanlı bildirimleri yönetir.
//
// Protokol: her mesaj bir JSON Event'tir, {"op": "...", "d": {...}, "seq": N}.
// Client sadece heartbeat gönderir; geri kalan her şey server → client yönündedir.
package ws

// Event, WebSocket üzerinden gönderilen/alınan mesaj zarfı.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir
)

// Server → Client
const (
	OpReady            = "ready"
	OpHeartbeatAck     = "heartbeat_ack"
	OpCategoryCreate   = "category_create"   // Yeni kategori; data: models.Category
	OpCategoryDelete   = "category_delete"   // data: CategoryDeleteData
	OpEnrollmentCreate = "enrollment_create" // Kursa yeni kayıt, sadece kursun eğitmenine
)

// ReadyData, bağlantı kurulunca gönderilen ilk event'in verisi.
type ReadyData struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// CategoryDeleteData, silinen kategorinin kimliği.
type CategoryDeleteData struct {
	ID string `json:"id"`
}

// EnrollmentCreateData, eğitmene giden yeni kayıt bildirimi.
type EnrollmentCreateData struct {
	EnrollmentID string `json:"enrollment_id"`
	CourseID     string `json:"course_id"`
	CourseTitle  string `json:"course_title"`
	PricePaid    int64  `json:"price_paid"`
}
