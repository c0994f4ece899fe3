package lending

import (
	"database/sql"
	"time"
)

// BorrowRecord is one row of the borrow_records table. A record is active
// while ReturnDate is unset; Return flips it exactly once.
type BorrowRecord struct {
	RecordID   int64
	RecordULID string
	PatronID   string
	BookID     int64
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate sql.NullTime
}

// BookInfo is the slice of the books table the lending flows need.
type BookInfo struct {
	ID              int64
	Title           string
	AvailableCopies int
	TotalCopies     int
}
