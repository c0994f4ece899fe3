package payment

import (
	"context"
	"fmt"
	"strings"

	"biblio-backend/internal/lending"
	"biblio-backend/internal/platform/apierr"
	"biblio-backend/internal/platform/validate"
)

type feeSource interface {
	LateFeeForBook(ctx context.Context, patronID string, bookID int64) (lending.LateFeeResponse, error)
}

type bookSource interface {
	BookTitle(ctx context.Context, bookID int64) (string, error)
}

// Service routes late-fee payments and refunds through the gateway. The
// gateway is required at construction; there is no hidden default.
type Service struct {
	gateway Gateway
	fees    feeSource
	books   bookSource
}

func NewService(gateway Gateway, fees feeSource, books bookSource) *Service {
	return &Service{gateway: gateway, fees: fees, books: books}
}

// PayLateFees settles the current fee for a single borrowed book. The
// gateway is only contacted once the fee is known to be positive; a
// gateway fault is converted into a processing-error result, never
// propagated.
func (s *Service) PayLateFees(ctx context.Context, req PayLateFeesRequest) (PaymentResponse, error) {
	if err := validate.PatronID(req.PatronID); err != nil {
		return PaymentResponse{}, apierr.ErrInvalid(err.Error())
	}

	feeInfo, err := s.fees.LateFeeForBook(ctx, req.PatronID, req.BookID)
	if err != nil {
		return PaymentResponse{}, apierr.ErrInternal("unable to calculate late fees")
	}
	if !feeInfo.FeeAmount.IsPositive() {
		return PaymentResponse{Success: false, Message: "No late fees to pay for this book."}, nil
	}

	title, err := s.books.BookTitle(ctx, req.BookID)
	if err != nil {
		return PaymentResponse{}, err
	}

	ok, txn, msg, err := s.gateway.ProcessPayment(ctx, req.PatronID, feeInfo.FeeAmount,
		fmt.Sprintf("Late fees for '%s'", title))
	if err != nil {
		return PaymentResponse{Success: false, Message: fmt.Sprintf("Payment processing error: %v", err)}, nil
	}
	if !ok {
		return PaymentResponse{Success: false, Message: fmt.Sprintf("Payment failed: %s", msg)}, nil
	}
	return PaymentResponse{
		Success:       true,
		Message:       fmt.Sprintf("Payment successful! %s", msg),
		TransactionID: &txn,
	}, nil
}

// RefundLateFeePayment refunds a prior settlement. The transaction ID
// shape and the amount bounds are checked before the gateway is contacted;
// a refund can never exceed the single-book fee cap.
func (s *Service) RefundLateFeePayment(ctx context.Context, req RefundRequest) (PaymentResponse, error) {
	if !hasTxnPrefix(req.TransactionID) {
		return PaymentResponse{}, apierr.ErrInvalid("invalid transaction ID")
	}
	if !req.Amount.IsPositive() {
		return PaymentResponse{}, apierr.ErrInvalid("refund amount must be greater than 0")
	}
	if req.Amount.GreaterThan(lending.MaxLateFee) {
		return PaymentResponse{}, apierr.ErrInvalid("refund amount exceeds maximum late fee")
	}

	ok, msg, err := s.gateway.RefundPayment(ctx, req.TransactionID, req.Amount)
	if err != nil {
		return PaymentResponse{Success: false, Message: fmt.Sprintf("Refund processing error: %v", err)}, nil
	}
	if !ok {
		return PaymentResponse{Success: false, Message: fmt.Sprintf("Refund failed: %s", msg)}, nil
	}
	return PaymentResponse{Success: true, Message: msg}, nil
}

func (s *Service) VerifyPayment(ctx context.Context, transactionID string) (StatusResult, error) {
	res, err := s.gateway.VerifyPaymentStatus(ctx, transactionID)
	if err != nil {
		return StatusResult{}, apierr.ErrInternal("unable to verify payment status")
	}
	return res, nil
}

func hasTxnPrefix(id string) bool {
	return strings.HasPrefix(id, TxnPrefix)
}
