package catalog

import "time"

// Book is one row of the books table. AvailableCopies is only ever moved
// by ±1 from the lending flows.
type Book struct {
	ID              int64
	Title           string
	Author          string
	ISBN            string
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
}
