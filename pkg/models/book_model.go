package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book maps to collection `books`. Librarian is the owning librarian's email.
// Status is the publication state; it has no terminal-state lifecycle, so the
// status-update path writes it without transition checks.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookName    string             `bson:"bookName" json:"bookName"`
	BookAuthor  string             `bson:"bookAuthor" json:"bookAuthor"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	BookImage   string             `bson:"bookImage,omitempty" json:"bookImage,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	Librarian   string             `bson:"librarian" json:"librarian"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
