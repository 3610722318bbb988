package views

type CheckoutSessionRequest struct {
	Price          float64 `json:"price" binding:"required,gt=0"`
	BookName       string  `json:"bookName" binding:"required"`
	OrderID        string  `json:"orderId" binding:"required"`
	BookID         string  `json:"bookId" binding:"required"`
	LibrarianEmail string  `json:"librarianEmail" binding:"required,email"`
	CustomerEmail  string  `json:"customerEmail" binding:"required,email"`
}

// PaymentConfirmation is the outcome of confirming a checkout session.
// AlreadyRecorded is set when the transaction was confirmed before; in that
// case no writes were performed.
type PaymentConfirmation struct {
	AlreadyRecorded bool   `json:"-"`
	TransactionID   string `json:"transactionId"`
	PaymentID       string `json:"paymentId,omitempty"`
}
