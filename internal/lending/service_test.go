package lending

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio-backend/internal/platform/apierr"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubIDGen struct{}

func (stubIDGen) NewULID(time.Time) string { return "01TESTULID0000000000000000" }

type fakeLendingStore struct {
	book        *BookInfo
	bookErr     error
	activeCount int
	countErr    error
	active      *BorrowRecord
	activeErr   error
	created     *BorrowRecord
	createErr   error
	returnedID  int64
	returnedAt  time.Time
	returnErr   error
}

func (f *fakeLendingStore) GetBook(context.Context, int64) (*BookInfo, error) {
	return f.book, f.bookErr
}

func (f *fakeLendingStore) CountActiveByPatron(context.Context, string) (int, error) {
	return f.activeCount, f.countErr
}

func (f *fakeLendingStore) GetActiveRecord(context.Context, string, int64) (*BorrowRecord, error) {
	return f.active, f.activeErr
}

func (f *fakeLendingStore) CreateBorrow(_ context.Context, rec *BorrowRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	rec.RecordID = 1
	f.created = rec
	return nil
}

func (f *fakeLendingStore) CompleteReturn(_ context.Context, recordID, _ int64, returnedAt time.Time) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.returnedID = recordID
	f.returnedAt = returnedAt
	return nil
}

func newTestService(store *fakeLendingStore, now time.Time) *Service {
	return &Service{store: store, clock: fixedClock{t: now}, id: stubIDGen{}}
}

var testNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestBorrowInvalidPatronID(t *testing.T) {
	testCases := []string{"", "12345", "1234567", "12a456", "ABCDEF"}

	for _, patronID := range testCases {
		store := &fakeLendingStore{book: &BookInfo{ID: 1, Title: "Go", AvailableCopies: 1, TotalCopies: 1}}
		svc := newTestService(store, testNow)

		_, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: patronID, BookID: 1})
		require.Error(t, err, "patron=%q", patronID)
		var api *apierr.APIError
		require.ErrorAs(t, err, &api)
		assert.Equal(t, apierr.CodeInvalidArgument, api.Code)
		assert.Contains(t, api.Message, "invalid patron ID")
		assert.Nil(t, store.created)
	}
}

func TestBorrowBookNotFound(t *testing.T) {
	store := &fakeLendingStore{book: nil}
	svc := newTestService(store, testNow)

	_, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 42})
	var api *apierr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apierr.CodeNotFound, api.Code)
	assert.Contains(t, api.Message, "book not found")
}

func TestBorrowBookNotAvailable(t *testing.T) {
	store := &fakeLendingStore{book: &BookInfo{ID: 1, Title: "Go", AvailableCopies: 0, TotalCopies: 2}}
	svc := newTestService(store, testNow)

	_, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 1})
	var api *apierr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apierr.CodeConflict, api.Code)
	assert.Contains(t, api.Message, "not available")
	assert.Nil(t, store.created)
}

func TestBorrowLimit(t *testing.T) {
	book := &BookInfo{ID: 1, Title: "Go", AvailableCopies: 3, TotalCopies: 3}

	// the limit is exclusive: 5 active borrows reject the 6th attempt
	store := &fakeLendingStore{book: book, activeCount: 5}
	svc := newTestService(store, testNow)

	_, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 1})
	var api *apierr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apierr.CodeConflict, api.Code)
	assert.Contains(t, api.Message, "maximum borrowing limit of 5 books")

	// 4 active borrows still pass
	store = &fakeLendingStore{book: book, activeCount: 4}
	svc = newTestService(store, testNow)

	_, err = svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 1})
	require.NoError(t, err)
	require.NotNil(t, store.created)
}

func TestBorrowSuccess(t *testing.T) {
	store := &fakeLendingStore{book: &BookInfo{ID: 1, Title: "The Go Programming Language", AvailableCopies: 2, TotalCopies: 3}}
	svc := newTestService(store, testNow)

	res, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 1})
	require.NoError(t, err)

	wantDue := testNow.AddDate(0, 0, 14)
	assert.True(t, res.DueDate.Equal(wantDue))
	assert.Contains(t, res.Message, "The Go Programming Language")
	assert.Contains(t, res.Message, wantDue.Format("2006-01-02"))

	require.NotNil(t, store.created)
	assert.Equal(t, "123456", store.created.PatronID)
	assert.True(t, store.created.BorrowDate.Equal(testNow))
	assert.True(t, store.created.DueDate.Equal(wantDue))
}

func TestBorrowStoreFailurePropagates(t *testing.T) {
	store := &fakeLendingStore{
		book:      &BookInfo{ID: 1, Title: "Go", AvailableCopies: 1, TotalCopies: 1},
		createErr: apierr.ErrConflict("this book is currently not available"),
	}
	svc := newTestService(store, testNow)

	_, err := svc.Borrow(context.Background(), BorrowRequest{PatronID: "123456", BookID: 1})
	var api *apierr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apierr.CodeConflict, api.Code)
}

func TestReturnNoActiveRecord(t *testing.T) {
	store := &fakeLendingStore{
		book:   &BookInfo{ID: 1, Title: "Go", AvailableCopies: 1, TotalCopies: 2},
		active: nil,
	}
	svc := newTestService(store, testNow)

	_, err := svc.Return(context.Background(), ReturnRequest{PatronID: "123456", BookID: 1})
	var api *apierr.APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, apierr.CodeNotFound, api.Code)
	assert.Contains(t, api.Message, "no active borrow record found")
}

func TestReturnOverdue(t *testing.T) {
	store := &fakeLendingStore{
		book: &BookInfo{ID: 1, Title: "The Testing Tales", AvailableCopies: 0, TotalCopies: 1},
		active: &BorrowRecord{
			RecordID: 9,
			PatronID: "123456",
			BookID:   1,
			DueDate:  testNow.AddDate(0, 0, -4),
		},
	}
	svc := newTestService(store, testNow)

	res, err := svc.Return(context.Background(), ReturnRequest{PatronID: "123456", BookID: 1})
	require.NoError(t, err)

	assert.Equal(t, "2.00", res.FeeAmount.StringFixed(2))
	assert.Equal(t, 4, res.DaysOverdue)
	assert.Contains(t, res.Message, "$2.00")
	assert.Contains(t, res.Message, "4 day(s)")
	assert.Equal(t, int64(9), store.returnedID)
	assert.True(t, store.returnedAt.Equal(testNow))
}

func TestReturnOnTime(t *testing.T) {
	store := &fakeLendingStore{
		book: &BookInfo{ID: 1, Title: "Go", AvailableCopies: 0, TotalCopies: 1},
		active: &BorrowRecord{
			RecordID: 9,
			PatronID: "123456",
			BookID:   1,
			DueDate:  testNow.AddDate(0, 0, 3),
		},
	}
	svc := newTestService(store, testNow)

	res, err := svc.Return(context.Background(), ReturnRequest{PatronID: "123456", BookID: 1})
	require.NoError(t, err)

	assert.True(t, res.FeeAmount.IsZero())
	assert.Equal(t, 0, res.DaysOverdue)
	assert.Contains(t, res.Message, "on time")
	assert.Contains(t, res.Message, "No late fee")
}

func TestReturnStoreFailure(t *testing.T) {
	store := &fakeLendingStore{
		book:      &BookInfo{ID: 1, Title: "Go", AvailableCopies: 0, TotalCopies: 1},
		active:    &BorrowRecord{RecordID: 9, PatronID: "123456", BookID: 1, DueDate: testNow},
		returnErr: errors.New("db down"),
	}
	svc := newTestService(store, testNow)

	_, err := svc.Return(context.Background(), ReturnRequest{PatronID: "123456", BookID: 1})
	assert.Error(t, err)
}

func TestLateFeeForBookStatuses(t *testing.T) {
	ctx := context.Background()

	// no active record
	svc := newTestService(&fakeLendingStore{active: nil}, testNow)
	res, err := svc.LateFeeForBook(ctx, "123456", 1)
	require.NoError(t, err)
	assert.Equal(t, FeeStatusNotFound, res.Status)
	assert.True(t, res.FeeAmount.IsZero())

	// active, not overdue
	svc = newTestService(&fakeLendingStore{
		active: &BorrowRecord{RecordID: 1, DueDate: testNow.AddDate(0, 0, 2)},
	}, testNow)
	res, err = svc.LateFeeForBook(ctx, "123456", 1)
	require.NoError(t, err)
	assert.Equal(t, FeeStatusNotOverdue, res.Status)
	assert.Equal(t, 0, res.DaysOverdue)

	// active, 10 days overdue
	svc = newTestService(&fakeLendingStore{
		active: &BorrowRecord{RecordID: 1, DueDate: testNow.AddDate(0, 0, -10)},
	}, testNow)
	res, err = svc.LateFeeForBook(ctx, "123456", 1)
	require.NoError(t, err)
	assert.Equal(t, FeeStatusOK, res.Status)
	assert.Equal(t, 10, res.DaysOverdue)
	assert.Equal(t, "6.50", res.FeeAmount.StringFixed(2))
	assert.Equal(t, testNow.AddDate(0, 0, -10).Format("2006-01-02"), res.DueDate)
}
