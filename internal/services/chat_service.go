package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/hwigle/reactStudy/internal/models"
)

// ChatServiceProvider defines the interface for chat history storage.
type ChatServiceProvider interface {
	Save(msg models.ChatMessage) (models.ChatMessage, error)
	History(roomID string, limit int) ([]models.ChatMessage, error)
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

// ChatService persists relayed chat messages so rooms can replay recent
// history to late joiners.
type ChatService struct {
	db *sql.DB
}

// NewChatService creates a new ChatService.
func NewChatService(db *sql.DB) *ChatService {
	return &ChatService{db: db}
}

// Save stores a relayed message, assigning it an id and timestamp.
func (s *ChatService) Save(msg models.ChatMessage) (models.ChatMessage, error) {
	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		"INSERT INTO chat_messages (id, room_id, sender, content, type, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.RoomID, msg.Sender, msg.Content, msg.Type, msg.CreatedAt)
	if err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

// History returns up to limit most recent messages of a room in
// chronological order.
func (s *ChatService) History(roomID string, limit int) ([]models.ChatMessage, error) {
	rows, err := s.db.Query(
		"SELECT id, room_id, sender, content, type, created_at FROM chat_messages WHERE room_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0, limit)
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Content, &m.Type, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// PurgeOlderThan removes messages created before the cutoff and returns
// the number of rows deleted.
func (s *ChatService) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM chat_messages WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
