package models

import (
	"time"

	"github.com/booknest/booknest-server/pkg"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order maps to collection `orders`. TransactionID is set once, when the
// payment confirmation records the order as paid.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookID         primitive.ObjectID `bson:"bookId" json:"bookId"`
	BookName       string             `bson:"bookName" json:"bookName"`
	CustomerEmail  string             `bson:"customerEmail" json:"customerEmail"`
	LibrarianEmail string             `bson:"librarianEmail" json:"librarianEmail"`
	Price          float64            `bson:"price" json:"price"`
	OrderStatus    pkg.OrderStatus    `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus  pkg.PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID  string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
