package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClient(h *Hub, userID string, buf int) *Client {
	return &Client{hub: h, userID: userID, send: make(chan []byte, buf)}
}

func readEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.send:
		var e Event
		require.NoError(t, json.Unmarshal(raw, &e))
		return e
	default:
		t.Fatalf("no event queued for %s", c.userID)
		return Event{}
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	a1 := fakeClient(h, "a", 4)
	a2 := fakeClient(h, "a", 4)
	b := fakeClient(h, "b", 4)
	h.addClient(a1)
	h.addClient(a2)
	h.addClient(b)

	assert.ElementsMatch(t, []string{"a", "b"}, h.OnlineUserIDs())

	h.BroadcastToUser("a", Event{Op: OpEnrollmentCreate, Data: EnrollmentCreateData{CourseID: "c1"}})
	assert.Equal(t, OpEnrollmentCreate, readEvent(t, a1).Op)
	assert.Equal(t, OpEnrollmentCreate, readEvent(t, a2).Op)
	assert.Empty(t, b.send)

	h.BroadcastToAll(Event{Op: OpCategoryDelete, Data: CategoryDeleteData{ID: "x"}})
	e := readEvent(t, b)
	assert.Equal(t, OpCategoryDelete, e.Op)
	assert.Equal(t, int64(2), e.Seq)
	assert.Len(t, a1.send, 1)
}

func TestHubRemoveClientIsIdempotent(t *testing.T) {
	h := NewHub()
	c := fakeClient(h, "a", 1)
	h.addClient(c)

	h.removeClient(c)
	assert.NotPanics(t, func() { h.removeClient(c) })
	assert.Empty(t, h.OnlineUserIDs())

	_, open := <-c.send
	assert.False(t, open)
}

func TestHubShutdownStopsRun(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	c := fakeClient(h, "a", 1)
	h.register <- c
	h.Shutdown()
	<-done

	_, open := <-c.send
	assert.False(t, open)
	assert.NotPanics(t, h.Shutdown)
}
