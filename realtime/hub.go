package realtime

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Event is the wire envelope pushed to connected observers.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub is a process-wide broadcaster. Delivery is best effort: there is no
// acknowledgment, no replay, and an observer that connects after an event
// misses it permanently.
type Hub struct {
	logger *zap.Logger

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub constructs a Hub. Run must be started on its own goroutine before
// any Publish or ServeWS call.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run owns the client set. All membership changes and fan-out go through
// this loop, so no locking is needed anywhere else.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow observer: drop the event for this client
					// rather than block the publisher.
					h.logger.Warn("realtime: dropping event for slow client")
				}
			}
		}
	}
}

// Publish broadcasts an event to all connected observers. It never blocks
// beyond a buffered channel hand-off and never returns an error; a full
// broadcast queue drops the event entirely.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("realtime: failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("realtime: broadcast queue full, event dropped", zap.String("event", event))
	}
}
