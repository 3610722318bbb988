package services

import (
	"context"
	"fmt"
	"time"

	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/booknest/booknest-server/pkg/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService interface {
	Create(ctx context.Context, traceID string, req views.CreateOrderRequest) (*models.Order, error)
	// UpdateStatus enforces the order lifecycle: the requested status must be
	// a known value and the current status must not be terminal.
	UpdateStatus(ctx context.Context, traceID, orderID, requested string) (*views.UpdateResult, error)
	ListByCustomer(ctx context.Context, traceID, email string) ([]models.Order, error)
	ListByLibrarian(ctx context.Context, traceID, email string) ([]models.Order, error)
	Delete(ctx context.Context, traceID, orderID string) (int64, error)
}

type OrderServiceImpl struct {
	logger    *zap.Logger
	orderRepo repositories.OrderRepository
}

func NewOrderService(logger *zap.Logger, orderRepo repositories.OrderRepository) OrderService {
	return &OrderServiceImpl{logger: logger, orderRepo: orderRepo}
}

func (s *OrderServiceImpl) Create(ctx context.Context, traceID string, req views.CreateOrderRequest) (*models.Order, error) {
	bookID, err := primitive.ObjectIDFromHex(req.BookID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}

	order := models.Order{
		BookID:         bookID,
		BookName:       req.BookName,
		CustomerEmail:  req.CustomerEmail,
		LibrarianEmail: req.LibrarianEmail,
		Price:          req.Price,
		OrderStatus:    pkg.OrderStatusPending,
		PaymentStatus:  pkg.PaymentStatusUnpaid,
		CreatedAt:      time.Now().UTC(),
	}
	id, err := s.orderRepo.Insert(ctx, order)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	order.ID = id
	s.logger.Info("order created",
		zap.String(pkg.TraceId, traceID),
		zap.String("orderId", id.Hex()),
		zap.String("customerEmail", req.CustomerEmail),
	)
	return &order, nil
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, traceID, orderID, requested string) (*views.UpdateResult, error) {
	status := pkg.OrderStatus(requested)
	if !status.Valid() {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, fmt.Sprintf("unknown order status %q", requested), nil)
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid order id", err)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}

	// Terminal states are sinks: even re-setting the same value is rejected.
	if order.OrderStatus.Terminal() {
		return nil, pkg.NewAppError(pkg.ErrOrderTerminalCode,
			fmt.Sprintf("order is %s and can no longer change status", order.OrderStatus), nil)
	}

	res, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	s.logger.Info("order status updated",
		zap.String(pkg.TraceId, traceID),
		zap.String("orderId", orderID),
		zap.String("from", string(order.OrderStatus)),
		zap.String("to", string(status)),
	)
	return &views.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *OrderServiceImpl) ListByCustomer(ctx context.Context, traceID, email string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, email)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) ListByLibrarian(ctx context.Context, traceID, email string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByLibrarian(ctx, email)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, traceID, orderID string) (int64, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid order id", err)
	}
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return 0, pkg.HandleStoreError(traceID, s.logger, err)
	}
	if deleted == 0 {
		return 0, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "order not found", nil)
	}
	return deleted, nil
}
