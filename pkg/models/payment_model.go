package models

import (
	"time"

	"github.com/booknest/booknest-server/pkg"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only ledger entry for one confirmed external
// transaction. TransactionID carries a unique index; at most one document
// exists per real-world transaction. Amount is in major currency units.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID        primitive.ObjectID `bson:"orderId" json:"orderId"`
	BookID         primitive.ObjectID `bson:"bookId" json:"bookId"`
	BookName       string             `bson:"bookName" json:"bookName"`
	LibrarianEmail string             `bson:"librarianEmail" json:"librarianEmail"`
	CustomerEmail  string             `bson:"customerEmail" json:"customerEmail"`
	Amount         float64            `bson:"amount" json:"amount"`
	Currency       string             `bson:"currency" json:"currency"`
	TransactionID  string             `bson:"transactionId" json:"transactionId"`
	PaymentStatus  pkg.PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt         time.Time          `bson:"paidAt" json:"paidAt"`
}
