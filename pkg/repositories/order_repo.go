package repositories

import (
	"context"

	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/database"
	"github.com/booknest/booknest-server/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// UpdateStatus writes orderStatus and nothing else.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status pkg.OrderStatus) (*mongo.UpdateResult, error)
	// MarkPaid records the payment outcome on the order: paymentStatus=paid,
	// orderStatus=pending, transactionId set.
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*mongo.UpdateResult, error)
	FindByCustomer(ctx context.Context, email string) ([]models.Order, error)
	FindByLibrarian(ctx context.Context, email string) ([]models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// DeleteByBook removes all orders referencing a book; used by the book
	// deletion cascade.
	DeleteByBook(ctx context.Context, bookID primitive.ObjectID) (int64, error)
}

type OrderRepositoryImpl struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &OrderRepositoryImpl{col: db.Collection(database.CollectionOrders)}
}

func (r OrderRepositoryImpl) Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r OrderRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r OrderRepositoryImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status pkg.OrderStatus) (*mongo.UpdateResult, error) {
	return r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"orderStatus": status}})
}

func (r OrderRepositoryImpl) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (*mongo.UpdateResult, error) {
	return r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"paymentStatus": pkg.PaymentStatusPaid,
		"orderStatus":   pkg.OrderStatusPending,
		"transactionId": transactionID,
	}})
}

func (r OrderRepositoryImpl) FindByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	return r.findMany(ctx, bson.M{"customerEmail": email})
}

func (r OrderRepositoryImpl) FindByLibrarian(ctx context.Context, email string) ([]models.Order, error) {
	return r.findMany(ctx, bson.M{"librarianEmail": email})
}

func (r OrderRepositoryImpl) findMany(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r OrderRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r OrderRepositoryImpl) DeleteByBook(ctx context.Context, bookID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"bookId": bookID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
