package models

import "time"

// Comment represents a comment attached to a board post.
type Comment struct {
	ID             int64     `json:"id"`
	BoardID        int64     `json:"boardId"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}
