package catalog

type AddBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	ISBN        string `json:"isbn" binding:"required"`
	TotalCopies int    `json:"total_copies"`
}

type AddBookResponse struct {
	BookID  int64  `json:"book_id"`
	Message string `json:"message"`
}

// BookView is the display shape used by the catalog list and search
// endpoints.
type BookView struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
	Availability    string `json:"availability"`
	CanBorrow       bool   `json:"can_borrow"`
}
