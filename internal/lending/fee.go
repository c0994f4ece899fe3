package lending

import (
	"time"

	"github.com/shopspring/decimal"
)

// Late fee accrual: $0.50 per day for the first 7 overdue days, $1.00 per
// day after that, capped at MaxLateFee per book.
var (
	firstWeekDailyRate = decimal.RequireFromString("0.50")
	laterDailyRate     = decimal.RequireFromString("1.00")

	// MaxLateFee is the ceiling for a single book's accrued fee, and the
	// upper bound for a single refund.
	MaxLateFee = decimal.RequireFromString("15.00")
)

// LateFee computes the accrued fee and whole overdue days for a record due
// at due, evaluated at now. Overdue days are counted on calendar dates;
// time of day is ignored. A zero timestamp on either side yields (0, 0).
func LateFee(due, now time.Time) (decimal.Decimal, int) {
	if due.IsZero() || now.IsZero() {
		return decimal.Zero, 0
	}

	days := daysBetween(due, now)
	if days <= 0 {
		return decimal.Zero, 0
	}

	firstSeven := days
	if firstSeven > 7 {
		firstSeven = 7
	}
	remainder := days - 7
	if remainder < 0 {
		remainder = 0
	}

	fee := firstWeekDailyRate.Mul(decimal.NewFromInt(int64(firstSeven))).
		Add(laterDailyRate.Mul(decimal.NewFromInt(int64(remainder))))
	if fee.GreaterThan(MaxLateFee) {
		fee = MaxLateFee
	}
	return fee.Round(2), days
}

func daysBetween(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(n.Sub(d).Hours() / 24)
}
