package websocket

import "encoding/json"

// Message defines the wire structure for chat relay messages.
type Message struct {
	Sender  string `json:"sender"`
	Content string `json:"content,omitempty"`
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
}

// NewErrorMessage builds a serialized error frame for a client.
func NewErrorMessage(msg string) []byte {
	data, _ := json.Marshal(Message{Type: "ERROR", Content: msg})
	return data
}
