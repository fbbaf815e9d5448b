package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sigma/models"
	"github.com/akinalp/sigma/pkg/token"
)

type countingRecorder struct{ reasons []string }

func (r *countingRecorder) RecordRejection(reason string) { r.reasons = append(r.reasons, reason) }

func newTestServer(t *testing.T) (*httptest.Server, *Hub, *token.Authority, *countingRecorder) {
	t.Helper()
	authority, err := token.NewAuthority("ws-test-secret")
	require.NoError(t, err)

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	rec := &countingRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, authority, rec, []string{"http://allowed.example"}).HandleConnection))
	t.Cleanup(srv.Close)
	return srv, hub, authority, rec
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func issue(t *testing.T, a *token.Authority, userID string, role models.Role) string {
	t.Helper()
	tok, err := a.IssueSession(models.SessionClaims{UserID: userID, Email: userID + "@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	srv, _, _, rec := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []string{"missing"}, rec.reasons)
}

func TestHandlerRejectsBadQueryToken(t *testing.T) {
	srv, _, _, rec := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token=garbage", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []string{"invalid"}, rec.reasons)
}

func TestHandlerRejectsExpiredQueryToken(t *testing.T) {
	srv, _, authority, rec := newTestServer(t)
	expired, err := authority.Issue(models.SessionClaims{UserID: "u1", Email: "u1@example.com", Role: models.RoleUser}, 0)
	require.NoError(t, err)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+expired, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []string{"expired"}, rec.reasons)
}

func TestHandlerCookieConnectReadyAndHeartbeat(t *testing.T) {
	srv, hub, authority, _ := newTestServer(t)

	header := http.Header{}
	header.Set("Cookie", token.CookieName+"="+issue(t, authority, "inst-1", models.RoleInstructor))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var ready Event
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, OpReady, ready.Op)
	data := ready.Data.(map[string]any)
	assert.Equal(t, "inst-1", data["user_id"])
	assert.Equal(t, "instructor", data["role"])

	require.NoError(t, conn.WriteJSON(Event{Op: OpHeartbeat}))
	var ack Event
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, OpHeartbeatAck, ack.Op)

	hub.BroadcastToUser("inst-1", Event{Op: OpEnrollmentCreate, Data: EnrollmentCreateData{CourseID: "c1"}})
	var pushed Event
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.Equal(t, OpEnrollmentCreate, pushed.Op)
}

func TestHandlerQueryTokenAndOriginCheck(t *testing.T) {
	srv, _, authority, _ := newTestServer(t)
	tok := issue(t, authority, "user-1", models.RoleUser)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+tok, header)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://allowed.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+tok, header)
	require.NoError(t, err)
	defer conn.Close()

	var ready Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, OpReady, ready.Op)
}
