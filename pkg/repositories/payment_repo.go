package repositories

import (
	"context"

	"github.com/booknest/booknest-server/pkg/database"
	"github.com/booknest/booknest-server/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository owns the append-only payment ledger. Entries are never
// updated or deleted; Insert relies on the unique transactionId index to
// reject duplicates.
type PaymentRepository interface {
	Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
	// FindByTransactionID returns mongo.ErrNoDocuments when no entry exists.
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// FindByCustomer returns ledger entries newest first (paidAt desc).
	FindByCustomer(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentRepositoryImpl struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &PaymentRepositoryImpl{col: db.Collection(database.CollectionPayments)}
}

func (r PaymentRepositoryImpl) Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r PaymentRepositoryImpl) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.col.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r PaymentRepositoryImpl) FindByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"customerEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
