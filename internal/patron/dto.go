package patron

import "github.com/shopspring/decimal"

const (
	StatusOK              = "ok"
	StatusInvalidPatronID = "invalid_patron_id"
)

type CurrentBorrow struct {
	BookID      int64           `json:"book_id"`
	Title       string          `json:"title"`
	DueDate     string          `json:"due_date,omitempty"`
	DaysOverdue int             `json:"days_overdue"`
	LateFee     decimal.Decimal `json:"late_fee"`
}

type HistoryEntry struct {
	BookID     int64   `json:"book_id"`
	Title      string  `json:"title"`
	BorrowDate *string `json:"borrow_date"`
	DueDate    *string `json:"due_date"`
	ReturnDate *string `json:"return_date"`
}

type StatusReport struct {
	PatronID           string          `json:"patron_id"`
	CurrentBorrows     []CurrentBorrow `json:"current_borrows"`
	CurrentBorrowCount int             `json:"current_borrow_count"`
	TotalLateFees      decimal.Decimal `json:"total_late_fees"`
	History            []HistoryEntry  `json:"history"`
	Status             string          `json:"status"`
}
