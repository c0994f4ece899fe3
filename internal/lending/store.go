package lending

import (
	"context"
	"database/sql"
	"time"

	"biblio-backend/internal/platform/apierr"
	"biblio-backend/internal/platform/db"
)

type Store struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) GetBook(ctx context.Context, bookID int64) (*BookInfo, error) {
	const q = `SELECT id, title, available_copies, total_copies FROM books WHERE id = ?`

	var b BookInfo
	err := s.db.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &b.Title, &b.AvailableCopies, &b.TotalCopies)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *Store) CountActiveByPatron(ctx context.Context, patronID string) (int, error) {
	const q = `SELECT COUNT(*) FROM borrow_records WHERE patron_id = ? AND return_date IS NULL`

	var count int
	if err := s.db.QueryRowContext(ctx, q, patronID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) GetActiveRecord(ctx context.Context, patronID string, bookID int64) (*BorrowRecord, error) {
	const q = `
	SELECT record_id, record_ulid, patron_id, book_id, borrow_date, due_date, return_date
	FROM borrow_records
	WHERE patron_id = ? AND book_id = ? AND return_date IS NULL
	ORDER BY borrow_date DESC
	LIMIT 1`

	var r BorrowRecord
	err := s.db.QueryRowContext(ctx, q, patronID, bookID).Scan(
		&r.RecordID, &r.RecordULID, &r.PatronID, &r.BookID, &r.BorrowDate, &r.DueDate, &r.ReturnDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// CreateBorrow inserts the record and decrements availability in one
// transaction. The availability guard lives in the UPDATE itself, so two
// racing borrows of the last copy cannot both succeed.
func (s *Store) CreateBorrow(ctx context.Context, rec *BorrowRecord) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const decQ = `
		UPDATE books SET available_copies = available_copies - 1
		WHERE id = ? AND available_copies > 0`

		res, err := tx.ExecContext(ctx, decQ, rec.BookID)
		if err != nil {
			return apierr.ErrInternal("database error occurred while updating book availability")
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return apierr.ErrConflict("this book is currently not available")
		}

		const insQ = `
		INSERT INTO borrow_records (record_ulid, patron_id, book_id, borrow_date, due_date)
		VALUES (?, ?, ?, ?, ?)`

		ins, err := tx.ExecContext(ctx, insQ, rec.RecordULID, rec.PatronID, rec.BookID, rec.BorrowDate, rec.DueDate)
		if err != nil {
			return apierr.ErrInternal("database error occurred while creating borrow record")
		}
		id, _ := ins.LastInsertId()
		rec.RecordID = id
		return nil
	})
}

// CompleteReturn marks the record returned and restores availability in
// one transaction. The return_date guard keeps a record from being closed
// twice; the availability guard keeps the counter within total_copies.
func (s *Store) CompleteReturn(ctx context.Context, recordID, bookID int64, returnedAt time.Time) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const updQ = `
		UPDATE borrow_records SET return_date = ?
		WHERE record_id = ? AND return_date IS NULL`

		res, err := tx.ExecContext(ctx, updQ, returnedAt, recordID)
		if err != nil {
			return apierr.ErrInternal("database error while recording the return")
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return apierr.ErrConflict("borrow record was already returned")
		}

		const incQ = `
		UPDATE books SET available_copies = available_copies + 1
		WHERE id = ? AND available_copies < total_copies`

		if _, err := tx.ExecContext(ctx, incQ, bookID); err != nil {
			return apierr.ErrInternal("database error while updating book availability")
		}
		return nil
	})
}
