package patron

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"biblio-backend/internal/lending"
	"biblio-backend/internal/platform/apierr"
	"biblio-backend/internal/platform/validate"
)

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type statusStore interface {
	ActiveBorrows(ctx context.Context, patronID string) ([]ActiveBorrow, error)
	History(ctx context.Context, patronID string) ([]HistoryRow, error)
}

type Service struct {
	store statusStore
	clock Clock
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db), clock: realClock{}}
}

// StatusReport aggregates a patron's active borrows (with live fee
// recomputation) and full history. A malformed patron ID yields a report
// shell with status invalid_patron_id; a failing history query is logged
// and swallowed so the rest of the report still renders.
func (s *Service) StatusReport(ctx context.Context, patronID string) (StatusReport, error) {
	report := StatusReport{
		PatronID:       patronID,
		CurrentBorrows: []CurrentBorrow{},
		TotalLateFees:  decimal.Zero,
		History:        []HistoryEntry{},
		Status:         StatusOK,
	}

	if err := validate.PatronID(patronID); err != nil {
		report.Status = StatusInvalidPatronID
		return report, nil
	}

	active, err := s.store.ActiveBorrows(ctx, patronID)
	if err != nil {
		return StatusReport{}, apierr.ErrInternal("database error while loading current borrows")
	}

	now := s.clock.Now()
	total := decimal.Zero
	for _, a := range active {
		fee, daysOverdue := lending.LateFee(a.DueDate, now)
		total = total.Add(fee)
		report.CurrentBorrows = append(report.CurrentBorrows, CurrentBorrow{
			BookID:      a.BookID,
			Title:       a.Title,
			DueDate:     a.DueDate.Format("2006-01-02"),
			DaysOverdue: daysOverdue,
			LateFee:     fee,
		})
	}
	report.CurrentBorrowCount = len(report.CurrentBorrows)
	report.TotalLateFees = total.Round(2)

	rows, err := s.store.History(ctx, patronID)
	if err != nil {
		// best effort: the report stays usable without history
		log.Printf("failed to load borrow history for patron %s: %v", patronID, err)
		return report, nil
	}
	for _, r := range rows {
		report.History = append(report.History, HistoryEntry{
			BookID:     r.BookID,
			Title:      r.Title,
			BorrowDate: formatNullDate(r.BorrowDate),
			DueDate:    formatNullDate(r.DueDate),
			ReturnDate: formatNullDate(r.ReturnDate),
		})
	}
	return report, nil
}

func formatNullDate(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	t, ok := validate.ParseDateTime(v.String)
	if !ok {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
