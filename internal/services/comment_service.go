package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/hwigle/reactStudy/internal/apperr"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/models"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	ListForBoard(boardID int64) ([]models.Comment, error)
	Create(principal *auth.Principal, boardID int64, content string) (models.Comment, error)
	Delete(principal *auth.Principal, id int64) error
}

// CommentService provides business logic for comments on board posts.
type CommentService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB, eventSvc EventServiceProvider) *CommentService {
	return &CommentService{db: db, eventSvc: eventSvc}
}

// ListForBoard returns all comments of a board post, oldest first.
func (s *CommentService) ListForBoard(boardID int64) ([]models.Comment, error) {
	rows, err := s.db.Query(
		"SELECT id, board_id, content, author_username, created_at FROM comments WHERE board_id = ? ORDER BY id",
		boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Content, &c.AuthorUsername, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create attaches a new comment to an existing board post, owned by the
// principal.
func (s *CommentService) Create(principal *auth.Principal, boardID int64, content string) (models.Comment, error) {
	if principal == nil {
		return models.Comment{}, apperr.ErrAuthenticationRequired
	}

	var exists bool
	if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM boards WHERE id = ?)", boardID).Scan(&exists); err != nil {
		return models.Comment{}, err
	}
	if !exists {
		return models.Comment{}, apperr.ErrNotFound
	}

	createdAt := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO comments(board_id, content, author_username, created_at) VALUES(?, ?, ?, ?)",
		boardID, content, principal.Username, createdAt)
	if err != nil {
		return models.Comment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Comment{}, err
	}

	s.eventSvc.CreateEvent("comment.create", "info", "Comment created", &principal.Username)
	return models.Comment{
		ID:             id,
		BoardID:        boardID,
		Content:        content,
		AuthorUsername: principal.Username,
		CreatedAt:      createdAt,
	}, nil
}

// Delete removes a comment after the ownership guard passes.
func (s *CommentService) Delete(principal *auth.Principal, id int64) error {
	var owner string
	err := s.db.QueryRow("SELECT author_username FROM comments WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := authorizeOwner(principal, owner); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM comments WHERE id = ?", id); err != nil {
		return err
	}

	s.eventSvc.CreateEvent("comment.delete", "info", "Comment deleted", &principal.Username)
	return nil
}
