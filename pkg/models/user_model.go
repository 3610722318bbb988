package models

import (
	"time"

	"github.com/booknest/booknest-server/pkg"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User maps to collection `users`
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role        pkg.UserRole       `bson:"role" json:"role"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
