package models

import "time"

// Board represents a single board post. AuthorUsername is set once at
// creation from the authenticated principal and never changes.
type Board struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}
