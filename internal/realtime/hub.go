package realtime

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"perfumeshop/internal/domain"
)

// Hub owns the registry of live viewer connections and broadcasts whole
// catalog snapshots to them. Delivery is fire-and-forget: there are no
// acks, no retries, and a viewer whose send buffer is full simply misses
// that snapshot until the next one (or until it reconnects and receives a
// fresh snapshot).
type Hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// snapshotMessage is the server-to-client event carrying the full product
// list, both on connect and after every catalog change.
type snapshotMessage struct {
	Event string           `json:"event"`
	Data  []domain.Product `json:"data"`
}

// Register adds a connection to the registry.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("realtime: client %s connected (%d online)", c.ID, n)
}

// Unregister drops a connection from the registry and releases its send
// queue. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		c.closeSend()
		h.logger.Printf("realtime: client %s disconnected (%d online)", c.ID, n)
	}
}

// PublishCatalog pushes the snapshot to every registered client, including
// whichever one triggered the change. Implements the product service's
// notifier contract.
func (h *Hub) PublishCatalog(products []domain.Product) {
	payload, err := EncodeSnapshot(products)
	if err != nil {
		h.logger.Printf("realtime: encode snapshot: %v", err)
		return
	}

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if !c.Send(payload) {
			h.logger.Printf("realtime: client %s too slow, snapshot dropped", c.ID)
		}
	}
}

// ClientCount reports how many viewers are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// EncodeSnapshot marshals the products event frame sent to viewers.
func EncodeSnapshot(products []domain.Product) ([]byte, error) {
	if products == nil {
		products = []domain.Product{}
	}
	return json.Marshal(snapshotMessage{Event: "products", Data: products})
}
