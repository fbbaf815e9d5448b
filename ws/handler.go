package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/akinalp/sigma/pkg"
	"github.com/akinalp/sigma/pkg/token"
)

// RequestAuthorizer, WebSocket handler'ın ihtiyaç duyduğu auth yüzeyi.
// *token.Authority bunu karşılar.
type RequestAuthorizer interface {
	AuthorizeRequest(r *http.Request) token.Authorization
	AuthorizeToken(raw string) token.Authorization
}

// RejectionRecorder, reddedilen bağlantıları metriklere yazar.
type RejectionRecorder interface {
	RecordRejection(reason string)
}

// Handler, /ws bağlantı isteklerini işler.
type Handler struct {
	hub      *Hub
	auth     RequestAuthorizer
	recorder RejectionRecorder
	upgrader websocket.Upgrader
}

// NewHandler, allowedOrigins dışındaki tarayıcı origin'lerini reddeden bir handler oluşturur.
// Origin header'ı olmayan istekler (tarayıcı dışı client'lar) kabul edilir.
func NewHandler(hub *Hub, auth RequestAuthorizer, recorder RejectionRecorder, allowedOrigins []string) *Handler {
	return &Handler{
		hub:      hub,
		auth:     auth,
		recorder: recorder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// authorize, HTTP gate ile aynı sırayı izler (cookie, sonra Bearer header).
// İkisi de yoksa cookie gönderemeyen client'lar için ?token= denenir.
func (h *Handler) authorize(r *http.Request) token.Authorization {
	authz := h.auth.AuthorizeRequest(r)
	if authz.Rejection != token.RejectTokenMissing {
		return authz
	}

	raw := r.URL.Query().Get("token")
	if raw == "" {
		return authz
	}
	return h.auth.AuthorizeToken(raw)
}

// HandleConnection, isteği doğrular, WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	authz := h.authorize(r)
	if !authz.OK() {
		if h.recorder != nil {
			h.recorder.RecordRejection(authz.Rejection.String())
		}
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, authz.Rejection.Message())
		return
	}
	claims := authz.Claims

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	client := newClient(h.hub, conn, claims.UserID)

	// Ready, register'dan önce buffer'a yazılır; bu noktada send'i kapatabilecek kimse yok.
	ready, err := json.Marshal(Event{Op: OpReady, Data: ReadyData{UserID: claims.UserID, Role: string(claims.Role)}})
	if err != nil {
		log.Printf("[ws] failed to marshal %s event for user %s: %v", OpReady, claims.UserID, err)
		conn.Close()
		return
	}
	client.send <- ready

	select {
	case h.hub.register <- client:
	case <-h.hub.quit:
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump()
}
