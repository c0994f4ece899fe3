package payment

import "github.com/shopspring/decimal"

type PayLateFeesRequest struct {
	PatronID string `json:"patron_id" binding:"required"`
	BookID   int64  `json:"book_id" binding:"required"`
}

type RefundRequest struct {
	TransactionID string          `json:"transaction_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResponse carries the settlement outcome. A declined payment is a
// successful operation with Success=false, not an error.
type PaymentResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
