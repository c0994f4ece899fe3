package lending

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"biblio-backend/internal/platform/apierr"
	"biblio-backend/internal/platform/validate"
)

const (
	loanPeriodDays   = 14
	maxActiveBorrows = 5
)

// -------------- Clock & ID --------------

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// -------------- Service --------------

type lendingStore interface {
	GetBook(ctx context.Context, bookID int64) (*BookInfo, error)
	CountActiveByPatron(ctx context.Context, patronID string) (int, error)
	GetActiveRecord(ctx context.Context, patronID string, bookID int64) (*BorrowRecord, error)
	CreateBorrow(ctx context.Context, rec *BorrowRecord) error
	CompleteReturn(ctx context.Context, recordID, bookID int64, returnedAt time.Time) error
}

type Service struct {
	store lendingStore
	clock Clock
	id    IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store: NewStore(db),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// Borrow checks the patron ID format, book availability and the per-patron
// borrow limit, then creates the record and decrements availability in one
// store transaction. A patron borrowing the same book twice gets two
// records; only the return path insists on a matching active record.
func (s *Service) Borrow(ctx context.Context, req BorrowRequest) (BorrowResponse, error) {
	if err := validate.PatronID(req.PatronID); err != nil {
		return BorrowResponse{}, apierr.ErrInvalid(err.Error())
	}

	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		return BorrowResponse{}, apierr.ErrInternal("database error occurred while creating borrow record")
	}
	if book == nil {
		return BorrowResponse{}, apierr.ErrNotFound("book not found")
	}
	if book.AvailableCopies <= 0 {
		return BorrowResponse{}, apierr.ErrConflict("this book is currently not available")
	}

	count, err := s.store.CountActiveByPatron(ctx, req.PatronID)
	if err != nil {
		return BorrowResponse{}, apierr.ErrInternal("database error occurred while creating borrow record")
	}
	if count >= maxActiveBorrows {
		return BorrowResponse{}, apierr.ErrConflict(
			fmt.Sprintf("you have reached the maximum borrowing limit of %d books", maxActiveBorrows))
	}

	now := s.clock.Now()
	rec := &BorrowRecord{
		RecordULID: s.id.NewULID(now),
		PatronID:   req.PatronID,
		BookID:     req.BookID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, loanPeriodDays),
	}
	if err := s.store.CreateBorrow(ctx, rec); err != nil {
		return BorrowResponse{}, err
	}

	return BorrowResponse{
		RecordULID: rec.RecordULID,
		BookID:     rec.BookID,
		PatronID:   rec.PatronID,
		BorrowDate: rec.BorrowDate,
		DueDate:    rec.DueDate,
		Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s.",
			book.Title, rec.DueDate.Format("2006-01-02")),
	}, nil
}

// Return closes the active record for the (patron, book) pair. The fee is
// computed against the instant of return BEFORE the record is marked
// returned; marking the record and restoring availability run in one store
// transaction.
func (s *Service) Return(ctx context.Context, req ReturnRequest) (ReturnResponse, error) {
	if err := validate.PatronID(req.PatronID); err != nil {
		return ReturnResponse{}, apierr.ErrInvalid(err.Error())
	}

	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		return ReturnResponse{}, apierr.ErrInternal("database error while recording the return")
	}
	if book == nil {
		return ReturnResponse{}, apierr.ErrNotFound("book not found")
	}

	active, err := s.store.GetActiveRecord(ctx, req.PatronID, req.BookID)
	if err != nil {
		return ReturnResponse{}, apierr.ErrInternal("database error while recording the return")
	}
	if active == nil {
		return ReturnResponse{}, apierr.ErrNotFound("no active borrow record found for this patron and book")
	}

	now := s.clock.Now()
	fee, daysOverdue := LateFee(active.DueDate, now)

	if err := s.store.CompleteReturn(ctx, active.RecordID, req.BookID, now); err != nil {
		return ReturnResponse{}, err
	}

	msg := fmt.Sprintf("Returned %q on time. No late fee.", book.Title)
	if fee.IsPositive() {
		msg = fmt.Sprintf("Returned %q. Late fee: $%s (overdue by %d day(s)).",
			book.Title, fee.StringFixed(2), daysOverdue)
	}

	return ReturnResponse{
		BookID:      req.BookID,
		PatronID:    req.PatronID,
		ReturnedAt:  now,
		FeeAmount:   fee,
		DaysOverdue: daysOverdue,
		Message:     msg,
	}, nil
}

// LateFeeForBook reports the current fee for an actively borrowed book.
// Read-only; a pair without an active record reports status "not_found"
// rather than an error.
func (s *Service) LateFeeForBook(ctx context.Context, patronID string, bookID int64) (LateFeeResponse, error) {
	active, err := s.store.GetActiveRecord(ctx, patronID, bookID)
	if err != nil {
		return LateFeeResponse{}, apierr.ErrInternal("database error while calculating the late fee")
	}
	if active == nil {
		return LateFeeResponse{Status: FeeStatusNotFound}, nil
	}

	fee, daysOverdue := LateFee(active.DueDate, s.clock.Now())
	status := FeeStatusNotOverdue
	if daysOverdue > 0 {
		status = FeeStatusOK
	}
	return LateFeeResponse{
		FeeAmount:   fee,
		DaysOverdue: daysOverdue,
		DueDate:     active.DueDate.Format("2006-01-02"),
		Status:      status,
	}, nil
}
