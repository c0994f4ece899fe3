package patron

import (
	"context"
	"database/sql"

	"biblio-backend/internal/platform/db"
)

type Store struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) ActiveBorrows(ctx context.Context, patronID string) ([]ActiveBorrow, error) {
	const q = `
	SELECT br.book_id, b.title, br.due_date
	FROM borrow_records br
	JOIN books b ON b.id = br.book_id
	WHERE br.patron_id = ? AND br.return_date IS NULL
	ORDER BY br.borrow_date DESC`

	rows, err := s.db.QueryContext(ctx, q, patronID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActiveBorrow
	for rows.Next() {
		var a ActiveBorrow
		if err := rows.Scan(&a.BookID, &a.Title, &a.DueDate); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// History reads the patron's full borrow history, newest borrow first.
func (s *Store) History(ctx context.Context, patronID string) ([]HistoryRow, error) {
	const q = `
	SELECT br.book_id, b.title,
	       DATE_FORMAT(br.borrow_date, '%Y-%m-%d %H:%i:%s'),
	       DATE_FORMAT(br.due_date, '%Y-%m-%d %H:%i:%s'),
	       DATE_FORMAT(br.return_date, '%Y-%m-%d %H:%i:%s')
	FROM borrow_records br
	JOIN books b ON b.id = br.book_id
	WHERE br.patron_id = ?
	ORDER BY br.borrow_date DESC`

	var out []HistoryRow
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		rows, err := tx.QueryContext(ctx, q, patronID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var h HistoryRow
			if err := rows.Scan(&h.BookID, &h.Title, &h.BorrowDate, &h.DueDate, &h.ReturnDate); err != nil {
				return err
			}
			out = append(out, h)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
