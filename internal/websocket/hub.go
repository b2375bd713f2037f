package websocket

import "github.com/rs/zerolog/log"

type roomMessage struct {
	room string
	data []byte
}

// Hub maintains the set of active clients and relays messages to the
// rooms they joined. All map access happens inside Run, so no lock is
// needed.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound room broadcasts.
	broadcast chan roomMessage

	// A map of room IDs to the set of clients subscribed to each.
	rooms map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan roomMessage),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if h.rooms[client.RoomID] == nil {
				h.rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.rooms[client.RoomID][client] = true
			log.Info().Str("room", client.RoomID).Int("total_clients", len(h.clients)).Msg("Client connected")

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Str("room", client.RoomID).Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.room] {
				select {
				case client.Send <- msg.data:
				default:
					// Slow consumer, drop it.
					h.drop(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all clients subscribed to a room.
func (h *Hub) BroadcastTo(roomID string, message []byte) {
	h.broadcast <- roomMessage{room: roomID, data: message}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	if subs, ok := h.rooms[client.RoomID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
}
