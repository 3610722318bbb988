package repositories

import (
	"context"

	"github.com/booknest/booknest-server/pkg/database"
	"github.com/booknest/booknest-server/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookRepository interface {
	Insert(ctx context.Context, book models.Book) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByLibrarian(ctx context.Context, email string) ([]models.Book, error)
	// Update overwrites the editable fields (name, author, price, description, image).
	Update(ctx context.Context, id primitive.ObjectID, book models.Book) (*mongo.UpdateResult, error)
	// UpdateStatus sets the publication status with no transition checks.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type BookRepositoryImpl struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) BookRepository {
	return &BookRepositoryImpl{col: db.Collection(database.CollectionBooks)}
}

func (r BookRepositoryImpl) Insert(ctx context.Context, book models.Book) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r BookRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r BookRepositoryImpl) FindAll(ctx context.Context) ([]models.Book, error) {
	return r.findMany(ctx, bson.M{})
}

func (r BookRepositoryImpl) FindByLibrarian(ctx context.Context, email string) ([]models.Book, error) {
	return r.findMany(ctx, bson.M{"librarian": email})
}

func (r BookRepositoryImpl) findMany(ctx context.Context, filter bson.M) ([]models.Book, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := make([]models.Book, 0)
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r BookRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, book models.Book) (*mongo.UpdateResult, error) {
	return r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"bookName":    book.BookName,
		"bookAuthor":  book.BookAuthor,
		"price":       book.Price,
		"description": book.Description,
		"bookImage":   book.BookImage,
	}})
}

func (r BookRepositoryImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

func (r BookRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
