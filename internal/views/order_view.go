package views

type CreateOrderRequest struct {
	BookID         string  `json:"bookId" binding:"required"`
	BookName       string  `json:"bookName" binding:"required"`
	CustomerEmail  string  `json:"customerEmail" binding:"required,email"`
	LibrarianEmail string  `json:"librarianEmail" binding:"required,email"`
	Price          float64 `json:"price" binding:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateResult mirrors the store's update outcome for success payloads.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports a book deletion and its order cascade.
type DeleteResult struct {
	DeletedBooks  int64 `json:"deletedBooks"`
	DeletedOrders int64 `json:"deletedOrders"`
}
