package repositories

import (
	"context"

	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/database"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/booknest/booknest-server/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userSearchLimit = 5

type UserRepository interface {
	// Search matches displayName or email case-insensitively, newest first.
	Search(ctx context.Context, searchText string) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
	// UpdateProfile sets only the provided (non-empty) fields.
	UpdateProfile(ctx context.Context, email, displayName, photoURL string) (int64, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role pkg.UserRole) (int64, error)
}

type UserRepositoryImpl struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &UserRepositoryImpl{col: db.Collection(database.CollectionUsers)}
}

func (r UserRepositoryImpl) Search(ctx context.Context, searchText string) ([]models.User, error) {
	filter := bson.M{}
	if !utils.IsEmpty(searchText) {
		filter["$or"] = bson.A{
			bson.M{"displayName": bson.M{"$regex": searchText, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": searchText, "$options": "i"}},
		}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(userSearchLimit)
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r UserRepositoryImpl) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r UserRepositoryImpl) UpdateProfile(ctx context.Context, email, displayName, photoURL string) (int64, error) {
	set := bson.M{}
	if !utils.IsEmpty(displayName) {
		set["displayName"] = displayName
	}
	if !utils.IsEmpty(photoURL) {
		set["photoURL"] = photoURL
	}
	if len(set) == 0 {
		return 0, nil
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r UserRepositoryImpl) UpdateRole(ctx context.Context, id primitive.ObjectID, role pkg.UserRole) (int64, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
