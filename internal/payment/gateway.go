package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"biblio-backend/internal/platform/validate"
)

// TxnPrefix marks every transaction identifier minted by the gateway.
const TxnPrefix = "txn_"

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusNotFound  = "not_found"
)

type StatusResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// Gateway is the external payment collaborator. A returned error is a
// transport-level fault (the gateway was unreachable or blew up); a
// declined payment comes back as ok=false with a message and a nil error.
type Gateway interface {
	ProcessPayment(ctx context.Context, patronID string, amount decimal.Decimal, description string) (ok bool, transactionID, message string, err error)
	RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (ok bool, message string, err error)
	VerifyPaymentStatus(ctx context.Context, transactionID string) (StatusResult, error)
}

type gatewayClock interface{ Now() time.Time }
type realGatewayClock struct{}

func (realGatewayClock) Now() time.Time { return time.Now().UTC() }

// SimulatedGateway stands in for the real payment provider. It applies the
// provider's published rules (positive amount, per-payment limit, patron ID
// shape) and mints txn_<patron>_<unix> identifiers.
type SimulatedGateway struct {
	limit decimal.Decimal
	clock gatewayClock
}

func NewSimulatedGateway(singlePaymentLimit decimal.Decimal) *SimulatedGateway {
	return &SimulatedGateway{limit: singlePaymentLimit, clock: realGatewayClock{}}
}

func (g *SimulatedGateway) ProcessPayment(_ context.Context, patronID string, amount decimal.Decimal, _ string) (bool, string, string, error) {
	if !amount.IsPositive() {
		return false, "", "Invalid amount", nil
	}
	if amount.GreaterThan(g.limit) {
		return false, "", "Payment amount exceeds limit", nil
	}
	if err := validate.PatronID(patronID); err != nil {
		return false, "", "Invalid patron ID", nil
	}

	txn := fmt.Sprintf("%s%s_%d", TxnPrefix, patronID, g.clock.Now().Unix())
	return true, txn, fmt.Sprintf("Payment of $%s processed successfully", amount.StringFixed(2)), nil
}

func (g *SimulatedGateway) RefundPayment(_ context.Context, transactionID string, amount decimal.Decimal) (bool, string, error) {
	if !strings.HasPrefix(transactionID, TxnPrefix) {
		return false, "Invalid transaction ID", nil
	}
	if !amount.IsPositive() {
		return false, "Invalid refund amount", nil
	}
	return true, fmt.Sprintf("Refund of $%s processed successfully", amount.StringFixed(2)), nil
}

func (g *SimulatedGateway) VerifyPaymentStatus(_ context.Context, transactionID string) (StatusResult, error) {
	if !strings.HasPrefix(transactionID, TxnPrefix) {
		return StatusResult{Status: PaymentStatusNotFound, TransactionID: transactionID}, nil
	}
	return StatusResult{Status: PaymentStatusCompleted, TransactionID: transactionID}, nil
}
