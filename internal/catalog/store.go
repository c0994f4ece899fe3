package catalog

import (
	"context"
	"database/sql"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) InsertBook(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books (title, author, isbn, total_copies, available_copies, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`

	res, err := s.db.ExecContext(ctx, q, b.Title, b.Author, b.ISBN, b.TotalCopies, b.AvailableCopies)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	b.ID = id
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Book, error) {
	const q = `
	SELECT id, title, author, isbn, total_copies, available_copies, created_at
	FROM books WHERE id = ?`

	var b Book
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	const q = `
	SELECT id, title, author, isbn, total_copies, available_copies, created_at
	FROM books WHERE isbn = ?`

	var b Book
	err := s.db.QueryRowContext(ctx, q, isbn).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListAll(ctx context.Context) ([]Book, error) {
	const q = `
	SELECT id, title, author, isbn, total_copies, available_copies, created_at
	FROM books ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
