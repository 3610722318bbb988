package views

type CreateBookRequest struct {
	BookName    string  `json:"bookName" binding:"required"`
	BookAuthor  string  `json:"bookAuthor" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	BookImage   string  `json:"bookImage"`
	Status      string  `json:"status"`
	Librarian   string  `json:"librarian" binding:"required,email"`
}

type UpdateBookRequest struct {
	BookName    string  `json:"bookName" binding:"required"`
	BookAuthor  string  `json:"bookAuthor" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	BookImage   string  `json:"bookImage"`
}

// UpdateBookStatusRequest carries the publication status. There is no
// enumerated lifecycle here; any non-empty value is accepted.
type UpdateBookStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
