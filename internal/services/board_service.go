package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/hwigle/reactStudy/internal/apperr"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BoardServiceProvider defines the interface for board post services.
type BoardServiceProvider interface {
	List(page, size int) (models.Page[models.Board], error)
	Get(id int64) (models.Board, error)
	Create(principal *auth.Principal, title, content string) (models.Board, error)
	Update(principal *auth.Principal, id int64, title, content string) (models.Board, error)
	Delete(principal *auth.Principal, id int64) error
}

// BoardService provides business logic for board posts.
type BoardService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewBoardService creates a new BoardService.
func NewBoardService(db *sql.DB, eventSvc EventServiceProvider) *BoardService {
	return &BoardService{db: db, eventSvc: eventSvc}
}

// authorizeOwner is the ownership guard for mutating operations. It
// fails closed when no principal is attached, and the returned error
// reveals nothing about the resource or its owner.
func authorizeOwner(principal *auth.Principal, ownerUsername string) error {
	if principal == nil {
		return apperr.ErrNotAuthorized
	}
	if principal.Username != ownerUsername {
		return apperr.ErrNotAuthorized
	}
	return nil
}

// List returns one page of board posts, newest first.
func (s *BoardService) List(page, size int) (models.Page[models.Board], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM boards").Scan(&total); err != nil {
		return models.Page[models.Board]{}, err
	}

	rows, err := s.db.Query(
		"SELECT id, title, content, author_username, created_at FROM boards ORDER BY id DESC LIMIT ? OFFSET ?",
		size, page*size)
	if err != nil {
		return models.Page[models.Board]{}, err
	}
	defer rows.Close()

	boards := make([]models.Board, 0, size)
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.AuthorUsername, &b.CreatedAt); err != nil {
			return models.Page[models.Board]{}, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Board]{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return models.Page[models.Board]{
		Content:       boards,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}, nil
}

// Get retrieves a single board post by its id.
func (s *BoardService) Get(id int64) (models.Board, error) {
	var b models.Board
	row := s.db.QueryRow("SELECT id, title, content, author_username, created_at FROM boards WHERE id = ?", id)
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.AuthorUsername, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Board{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// Create inserts a new board post owned by the principal.
func (s *BoardService) Create(principal *auth.Principal, title, content string) (models.Board, error) {
	if principal == nil {
		return models.Board{}, apperr.ErrAuthenticationRequired
	}

	createdAt := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO boards(title, content, author_username, created_at) VALUES(?, ?, ?, ?)",
		title, content, principal.Username, createdAt)
	if err != nil {
		return models.Board{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Board{}, err
	}

	s.eventSvc.CreateEvent("board.create", "info", "Board post created", &principal.Username)
	return models.Board{
		ID:             id,
		Title:          title,
		Content:        content,
		AuthorUsername: principal.Username,
		CreatedAt:      createdAt,
	}, nil
}

// Update replaces the title and content of a board post after the
// ownership guard passes.
func (s *BoardService) Update(principal *auth.Principal, id int64, title, content string) (models.Board, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Board{}, err
	}
	if err := authorizeOwner(principal, existing.AuthorUsername); err != nil {
		return models.Board{}, err
	}

	if _, err := s.db.Exec("UPDATE boards SET title = ?, content = ? WHERE id = ?", title, content, id); err != nil {
		return models.Board{}, err
	}

	s.eventSvc.CreateEvent("board.update", "info", "Board post updated", &principal.Username)
	return s.Get(id)
}

// Delete removes a board post and, through the schema, its comments
// after the ownership guard passes.
func (s *BoardService) Delete(principal *auth.Principal, id int64) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(principal, existing.AuthorUsername); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM boards WHERE id = ?", id); err != nil {
		return err
	}

	s.eventSvc.CreateEvent("board.delete", "info", "Board post deleted", &principal.Username)
	return nil
}
