package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"biblio-backend/internal/platform/apierr"
	"biblio-backend/internal/platform/validate"
)

type bookStore interface {
	InsertBook(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id int64) (*Book, error)
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	ListAll(ctx context.Context) ([]Book, error)
}

type Service struct {
	store bookStore
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

// AddBook validates the request, rejects a duplicate ISBN and stores the
// book with every copy available.
func (s *Service) AddBook(ctx context.Context, req AddBookRequest) (AddBookResponse, error) {
	if err := validate.Title(req.Title); err != nil {
		return AddBookResponse{}, apierr.ErrInvalid(err.Error())
	}
	if err := validate.Author(req.Author); err != nil {
		return AddBookResponse{}, apierr.ErrInvalid(err.Error())
	}
	if err := validate.ISBN13(req.ISBN); err != nil {
		return AddBookResponse{}, apierr.ErrInvalid(err.Error())
	}
	if req.TotalCopies <= 0 {
		return AddBookResponse{}, apierr.ErrInvalid("total copies must be a positive integer")
	}

	existing, err := s.store.GetByISBN(ctx, req.ISBN)
	if err != nil {
		return AddBookResponse{}, apierr.ErrInternal("database error occurred while adding the book")
	}
	if existing != nil {
		return AddBookResponse{}, apierr.ErrConflict("a book with this ISBN already exists")
	}

	b := &Book{
		Title:           strings.TrimSpace(req.Title),
		Author:          strings.TrimSpace(req.Author),
		ISBN:            req.ISBN,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
	}
	if err := s.store.InsertBook(ctx, b); err != nil {
		return AddBookResponse{}, apierr.ErrInternal("database error occurred while adding the book")
	}

	return AddBookResponse{
		BookID:  b.ID,
		Message: fmt.Sprintf("Book %q has been successfully added to the catalog.", b.Title),
	}, nil
}

func (s *Service) ListCatalog(ctx context.Context) ([]BookView, error) {
	books, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apierr.ErrInternal("database error occurred while loading the catalog")
	}
	views := make([]BookView, 0, len(books))
	for _, b := range books {
		views = append(views, toView(b))
	}
	return views, nil
}

// Search filters the catalog. Type "isbn" is a digits-only exact match,
// "title" and "author" are case-insensitive substring matches, anything
// else matches against title and author combined. A blank term yields an
// empty result set.
func (s *Service) Search(ctx context.Context, term, searchType string) ([]BookView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []BookView{}, nil
	}

	books, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apierr.ErrInternal("database error occurred while searching the catalog")
	}

	var matched []Book
	switch strings.ToLower(strings.TrimSpace(searchType)) {
	case "isbn":
		normTerm := validate.DigitsOnly(term)
		for _, b := range books {
			isbn := validate.DigitsOnly(b.ISBN)
			if isbn != "" && isbn == normTerm {
				matched = append(matched, b)
			}
		}
	case "title":
		low := strings.ToLower(term)
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), low) {
				matched = append(matched, b)
			}
		}
	case "author":
		low := strings.ToLower(term)
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Author), low) {
				matched = append(matched, b)
			}
		}
	default:
		low := strings.ToLower(term)
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), low) ||
				strings.Contains(strings.ToLower(b.Author), low) {
				matched = append(matched, b)
			}
		}
	}

	views := make([]BookView, 0, len(matched))
	for _, b := range matched {
		views = append(views, toView(b))
	}
	return views, nil
}

// BookTitle resolves a book title for payment descriptions.
func (s *Service) BookTitle(ctx context.Context, bookID int64) (string, error) {
	b, err := s.store.GetByID(ctx, bookID)
	if err != nil {
		return "", apierr.ErrInternal("database error occurred while loading the book")
	}
	if b == nil {
		return "", apierr.ErrNotFound("book not found")
	}
	return b.Title, nil
}

func toView(b Book) BookView {
	return BookView{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		AvailableCopies: b.AvailableCopies,
		TotalCopies:     b.TotalCopies,
		Availability:    fmt.Sprintf("%d / %d", b.AvailableCopies, b.TotalCopies),
		CanBorrow:       b.AvailableCopies > 0,
	}
}
