package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

type BorrowRequest struct {
	PatronID string `json:"patron_id" binding:"required"`
	BookID   int64  `json:"book_id" binding:"required"`
}

type BorrowResponse struct {
	RecordULID string    `json:"record_ulid"`
	BookID     int64     `json:"book_id"`
	PatronID   string    `json:"patron_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
	Message    string    `json:"message"`
}

type ReturnRequest struct {
	PatronID string `json:"patron_id" binding:"required"`
	BookID   int64  `json:"book_id" binding:"required"`
}

type ReturnResponse struct {
	BookID      int64           `json:"book_id"`
	PatronID    string          `json:"patron_id"`
	ReturnedAt  time.Time       `json:"returned_at"`
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	DaysOverdue int             `json:"days_overdue"`
	Message     string          `json:"message"`
}

// Late-fee query statuses.
const (
	FeeStatusNotFound   = "not_found"
	FeeStatusNotOverdue = "not_overdue"
	FeeStatusOK         = "ok"
)

type LateFeeResponse struct {
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	DaysOverdue int             `json:"days_overdue"`
	DueDate     string          `json:"due_date,omitempty"`
	Status      string          `json:"status"`
}
