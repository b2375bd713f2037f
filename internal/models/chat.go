package models

import "time"

// Message types understood by the chat relay.
const (
	ChatMessageChat  = "CHAT"
	ChatMessageJoin  = "JOIN"
	ChatMessageLeave = "LEAVE"
)

// ChatMessage is a single relayed chat message, kept for history replay
// until the retention job removes it.
type ChatMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
