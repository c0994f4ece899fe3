package patron

import (
	"database/sql"
	"time"
)

// ActiveBorrow is one active borrow record joined with its book title.
type ActiveBorrow struct {
	BookID  int64
	Title   string
	DueDate time.Time
}

// HistoryRow is one borrow record (active or returned) joined with its
// book title. The raw history query hands dates back as strings; the
// service parses them leniently so one bad row cannot sink the report.
type HistoryRow struct {
	BookID     int64
	Title      string
	BorrowDate sql.NullString
	DueDate    sql.NullString
	ReturnDate sql.NullString
}
