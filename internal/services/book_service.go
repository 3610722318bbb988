package services

import (
	"context"
	"time"

	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/booknest/booknest-server/pkg/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type BookService interface {
	Create(ctx context.Context, traceID string, req views.CreateBookRequest) (*models.Book, error)
	Get(ctx context.Context, traceID, bookID string) (*models.Book, error)
	List(ctx context.Context, traceID string) ([]models.Book, error)
	ListByLibrarian(ctx context.Context, traceID, email string) ([]models.Book, error)
	Update(ctx context.Context, traceID, bookID string, req views.UpdateBookRequest) (*views.UpdateResult, error)
	// UpdateStatus writes the publication status without transition checks;
	// books have no terminal-state lifecycle.
	UpdateStatus(ctx context.Context, traceID, bookID, status string) (*views.UpdateResult, error)
	// Delete removes a book and cascades to its orders. Ledger entries are
	// kept: they record money that actually moved.
	Delete(ctx context.Context, traceID, bookID string) (*views.DeleteResult, error)
}

type BookServiceImpl struct {
	logger    *zap.Logger
	bookRepo  repositories.BookRepository
	orderRepo repositories.OrderRepository
}

func NewBookService(logger *zap.Logger, bookRepo repositories.BookRepository, orderRepo repositories.OrderRepository) BookService {
	return &BookServiceImpl{logger: logger, bookRepo: bookRepo, orderRepo: orderRepo}
}

func (s *BookServiceImpl) Create(ctx context.Context, traceID string, req views.CreateBookRequest) (*models.Book, error) {
	book := models.Book{
		BookName:    req.BookName,
		BookAuthor:  req.BookAuthor,
		Price:       req.Price,
		Description: req.Description,
		BookImage:   req.BookImage,
		Status:      req.Status,
		Librarian:   req.Librarian,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.bookRepo.Insert(ctx, book)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	book.ID = id
	s.logger.Info("book created",
		zap.String(pkg.TraceId, traceID),
		zap.String("bookId", id.Hex()),
		zap.String("librarian", req.Librarian),
	)
	return &book, nil
}

func (s *BookServiceImpl) Get(ctx context.Context, traceID, bookID string) (*models.Book, error) {
	id, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return book, nil
}

func (s *BookServiceImpl) List(ctx context.Context, traceID string) ([]models.Book, error) {
	books, err := s.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return books, nil
}

func (s *BookServiceImpl) ListByLibrarian(ctx context.Context, traceID, email string) ([]models.Book, error) {
	books, err := s.bookRepo.FindByLibrarian(ctx, email)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return books, nil
}

func (s *BookServiceImpl) Update(ctx context.Context, traceID, bookID string, req views.UpdateBookRequest) (*views.UpdateResult, error) {
	id, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}
	res, err := s.bookRepo.Update(ctx, id, models.Book{
		BookName:    req.BookName,
		BookAuthor:  req.BookAuthor,
		Price:       req.Price,
		Description: req.Description,
		BookImage:   req.BookImage,
	})
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	if res.MatchedCount == 0 {
		return nil, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "book not found", nil)
	}
	return &views.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *BookServiceImpl) UpdateStatus(ctx context.Context, traceID, bookID, status string) (*views.UpdateResult, error) {
	id, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}
	res, err := s.bookRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	if res.MatchedCount == 0 {
		return nil, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "book not found", nil)
	}
	return &views.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *BookServiceImpl) Delete(ctx context.Context, traceID, bookID string) (*views.DeleteResult, error) {
	id, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}
	deletedBooks, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	if deletedBooks == 0 {
		return nil, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "book not found", nil)
	}
	deletedOrders, err := s.orderRepo.DeleteByBook(ctx, id)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	s.logger.Info("book deleted",
		zap.String(pkg.TraceId, traceID),
		zap.String("bookId", bookID),
		zap.Int64("deletedOrders", deletedOrders),
	)
	return &views.DeleteResult{DeletedBooks: deletedBooks, DeletedOrders: deletedOrders}, nil
}
