package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının event yayınlamak için kullandığı interface.
// Service'ler Hub'ın kendisine değil buna bağımlıdır; testlerde fake verilir.
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToUser(userID string, event Event)
}

// Hub, tüm WebSocket bağlantılarını yönetir.
//
// clients: userID → Client set; bir kullanıcının birden fazla sekmesi olabilir.
// users ve instructors tablolarının ID'leri aynı uzaydan (rastgele 64-bit hex)
// üretildiği için tek map yeterli.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	quitOnce   sync.Once

	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur. Run ayrı bir goroutine'de başlatılmalıdır.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run, register/unregister sinyallerini Shutdown çağrılana kadar işler.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	log.Printf("[ws] client connected: user=%s (connections: %d)",
		client.userID, len(h.clients[client.userID]))
}

// removeClient, client'ı çıkarır ve send channel'ını kapatır.
// Aynı client için ikinci çağrı no-op'tur.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.clients, client.userID)
		log.Printf("[ws] user fully disconnected: %s", client.userID)
	}
}

// dropClient, yavaş client'ı Hub'dan çıkarır. Broadcast RLock tutarken
// çağrıldığı için unregister'a ayrı goroutine'den yazılır.
func (h *Hub) dropClient(c *Client) {
	go func() {
		select {
		case h.unregister <- c:
		case <-h.quit:
		}
	}()
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	data, ok := h.encode(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.deliver(client, data)
		}
	}
}

// BroadcastToUser, kullanıcının tüm bağlantılarına event gönderir.
func (h *Hub) BroadcastToUser(userID string, event Event) {
	data, ok := h.encode(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		h.deliver(client, data)
	}
}

func (h *Hub) encode(event Event) ([]byte, bool) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal %s event: %v", event.Op, err)
		return nil, false
	}
	return data, true
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		log.Printf("[ws] send buffer full for user %s, dropping connection", client.userID)
		h.dropClient(client)
	}
}

// OnlineUserIDs, en az bir bağlantısı olan kullanıcıların ID'leri.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// Shutdown, Run döngüsünü durdurur ve tüm bağlantıları kapatır.
func (h *Hub) Shutdown() {
	h.quitOnce.Do(func() { close(h.quit) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
