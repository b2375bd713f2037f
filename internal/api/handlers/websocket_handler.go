package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/hwigle/reactStudy/internal/models"
	"github.com/hwigle/reactStudy/internal/services"
	ws "github.com/hwigle/reactStudy/internal/websocket"
	"github.com/rs/zerolog/log"
)

// historyReplayLimit is how many stored messages a client receives when
// joining a room.
const historyReplayLimit = 50

// WebSocketHandler upgrades chat connections and relays room messages.
type WebSocketHandler struct {
	hub  *ws.Hub
	chat services.ChatServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, chat services.ChatServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, chat: chat}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request for a chat room.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		roomID = "general"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, roomID)
	h.hub.Register <- client

	// Replay recent history to the new connection before live traffic.
	if history, err := h.chat.History(roomID, historyReplayLimit); err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("Failed to load chat history")
	} else {
		for _, m := range history {
			if data, err := json.Marshal(ws.Message{Sender: m.Sender, Content: m.Content, Type: m.Type, RoomID: m.RoomID}); err == nil {
				client.Send <- data
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(h.handleIncoming)
	}()

	// Cleanup on disconnect: announce the leave the way the client
	// announced the join.
	go func() {
		wg.Wait()
		if client.Username != "" {
			h.relay(ws.Message{Sender: client.Username, Type: models.ChatMessageLeave, RoomID: client.RoomID})
		}
		h.hub.Unregister <- client
	}()
}

// handleIncoming processes messages received from a websocket client.
func (h *WebSocketHandler) handleIncoming(client *ws.Client, raw []byte) {
	var msg ws.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Warn().Err(err).Str("room", client.RoomID).Msg("Error decoding websocket message")
		client.Send <- ws.NewErrorMessage("invalid message")
		return
	}

	// The room is fixed by the connection, whatever the client claims.
	msg.RoomID = client.RoomID

	switch msg.Type {
	case models.ChatMessageJoin:
		client.Username = msg.Sender
		h.relay(msg)
	case models.ChatMessageChat:
		if msg.Sender == "" {
			msg.Sender = client.Username
		}
		h.relay(msg)
	default:
		client.Send <- ws.NewErrorMessage("unknown message type: " + msg.Type)
	}
}

// relay persists a message and broadcasts it to its room.
func (h *WebSocketHandler) relay(msg ws.Message) {
	if _, err := h.chat.Save(models.ChatMessage{
		RoomID:  msg.RoomID,
		Sender:  msg.Sender,
		Content: msg.Content,
		Type:    msg.Type,
	}); err != nil {
		log.Error().Err(err).Str("room", msg.RoomID).Msg("Failed to persist chat message")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.hub.BroadcastTo(msg.RoomID, data)
}
