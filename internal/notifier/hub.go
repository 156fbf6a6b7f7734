package notifier

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// CommandHandler is called when a client command is received. The returned
// text is sent back to that client only.
type CommandHandler func(command string) string

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub maintains the set of console clients and broadcasts messages to them.
type Hub struct {
	clients   map[*client]bool
	broadcast chan []byte
	mu        sync.Mutex

	handler  CommandHandler
	limit    rate.Limit
	burst    int
	greeting string
}

// NewHub creates a Hub. Each client may send perSecond commands on average,
// with bursts up to burst.
func NewHub(handler CommandHandler, perSecond float64, burst int) *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		broadcast: make(chan []byte, 64),
		handler:   handler,
		limit:     rate.Limit(perSecond),
		burst:     burst,
	}
}

// Run fans broadcasts out to clients. Blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			log.Println("[INFO] console hub stopped")
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues text for every connected client. Messages are dropped
// when the hub is backed up.
func (h *Hub) Broadcast(text string) {
	select {
	case h.broadcast <- []byte(text):
	default:
		log.Println("[WARN] console broadcast queue full, dropping message")
	}
}

// Send implements the scheduler's notifier contract.
func (h *Hub) Send(text string) error {
	h.Broadcast(text)
	return nil
}

// SetGreeting sets the text sent to every client as soon as it connects.
func (h *Hub) SetGreeting(text string) {
	h.mu.Lock()
	h.greeting = text
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		log.Printf("[INFO] console client disconnected: %s", c.conn.RemoteAddr())
	}
}

// ServeWS upgrades the request to a websocket console session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade: %v", err)
		return
	}
	c := &client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 256),
		limiter: rate.NewLimiter(h.limit, h.burst),
	}
	h.mu.Lock()
	h.clients[c] = true
	if h.greeting != "" {
		c.send <- []byte(h.greeting)
	}
	h.mu.Unlock()
	log.Printf("[INFO] console client connected: %s", conn.RemoteAddr())

	go c.writePump()
	go c.readPump()
}
