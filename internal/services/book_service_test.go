package services

import (
	"context"
	"testing"

	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeBookRepo struct {
	books map[primitive.ObjectID]models.Book
}

func newFakeBookRepo(books ...models.Book) *fakeBookRepo {
	f := &fakeBookRepo{books: make(map[primitive.ObjectID]models.Book)}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeBookRepo) Insert(_ context.Context, book models.Book) (primitive.ObjectID, error) {
	book.ID = primitive.NewObjectID()
	f.books[book.ID] = book
	return book.ID, nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (f *fakeBookRepo) FindAll(_ context.Context) ([]models.Book, error) {
	out := make([]models.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookRepo) FindByLibrarian(_ context.Context, email string) ([]models.Book, error) {
	out := make([]models.Book, 0)
	for _, b := range f.books {
		if b.Librarian == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookRepo) Update(_ context.Context, id primitive.ObjectID, book models.Book) (*mongo.UpdateResult, error) {
	b, ok := f.books[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	b.BookName = book.BookName
	b.BookAuthor = book.BookAuthor
	b.Price = book.Price
	b.Description = book.Description
	b.BookImage = book.BookImage
	f.books[id] = b
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeBookRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	b, ok := f.books[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	b.Status = status
	f.books[id] = b
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := f.books[id]; !ok {
		return 0, nil
	}
	delete(f.books, id)
	return 1, nil
}

func bookFixture(librarian string) models.Book {
	return models.Book{
		ID:         primitive.NewObjectID(),
		BookName:   "The Pragmatic Programmer",
		BookAuthor: "Hunt, Thomas",
		Price:      34.99,
		Status:     "published",
		Librarian:  librarian,
	}
}

func TestDeleteBook_CascadesToOrdersButNotPayments(t *testing.T) {
	book := bookFixture("lib@example.com")
	bookRepo := newFakeBookRepo(book)

	target := orderWithStatus(pkg.OrderStatusPending)
	target.BookID = book.ID
	unrelated := orderWithStatus(pkg.OrderStatusShipped)
	orderRepo := newFakeOrderRepo(target, unrelated)

	svc := NewBookService(zap.NewNop(), bookRepo, orderRepo)

	result, err := svc.Delete(context.Background(), "trace", book.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedBooks)
	assert.Equal(t, int64(1), result.DeletedOrders)
	assert.NotContains(t, orderRepo.orders, target.ID)
	assert.Contains(t, orderRepo.orders, unrelated.ID, "orders of other books must survive")
}

func TestDeleteBook_UnknownBookIsNotFound(t *testing.T) {
	svc := NewBookService(zap.NewNop(), newFakeBookRepo(), newFakeOrderRepo())

	_, err := svc.Delete(context.Background(), "trace", primitive.NewObjectID().Hex())

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrRecordNotFoundCode))
}

func TestUpdateBookStatus_HasNoTransitionGuard(t *testing.T) {
	book := bookFixture("lib@example.com")
	book.Status = "archived"
	repo := newFakeBookRepo(book)
	svc := NewBookService(zap.NewNop(), repo, newFakeOrderRepo())

	result, err := svc.UpdateStatus(context.Background(), "trace", book.ID.Hex(), "published")

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)
	assert.Equal(t, "published", repo.books[book.ID].Status)
}

func TestUpdateBook_UnknownBookIsNotFound(t *testing.T) {
	svc := NewBookService(zap.NewNop(), newFakeBookRepo(), newFakeOrderRepo())

	_, err := svc.Update(context.Background(), "trace", primitive.NewObjectID().Hex(), views.UpdateBookRequest{
		BookName: "Renamed",
	})

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrRecordNotFoundCode))
}

func TestCreateBook_AssignsIDAndKeepsLibrarian(t *testing.T) {
	repo := newFakeBookRepo()
	svc := NewBookService(zap.NewNop(), repo, newFakeOrderRepo())

	book, err := svc.Create(context.Background(), "trace", views.CreateBookRequest{
		BookName:   "Designing Data-Intensive Applications",
		BookAuthor: "Kleppmann",
		Price:      39.99,
		Status:     "published",
		Librarian:  "lib@example.com",
	})

	require.NoError(t, err)
	assert.False(t, book.ID.IsZero())
	assert.Equal(t, "lib@example.com", book.Librarian)
	assert.Len(t, repo.books, 1)
}
