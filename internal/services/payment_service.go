package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/booknest/booknest-server/configs"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/gateway"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/booknest/booknest-server/pkg/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// minorUnitScale converts between major currency units (stored on orders and
// the ledger) and the gateway's integer minor units (cents).
const minorUnitScale = 100

type PaymentService interface {
	// CreateCheckoutSession mints a gateway session for an order and returns
	// the hosted payment URL.
	CreateCheckoutSession(ctx context.Context, traceID string, req views.CheckoutSessionRequest) (string, error)
	// ConfirmPayment verifies a completed session and records it durably,
	// exactly once per transaction.
	ConfirmPayment(ctx context.Context, traceID, sessionID string) (*views.PaymentConfirmation, error)
	ListByCustomer(ctx context.Context, traceID, email string) ([]models.Payment, error)
}

type PaymentServiceImpl struct {
	logger      *zap.Logger
	cfg         *configs.Config
	gateway     gateway.PaymentGateway
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
}

func NewPaymentService(
	logger *zap.Logger,
	cfg *configs.Config,
	gw gateway.PaymentGateway,
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
) PaymentService {
	return &PaymentServiceImpl{
		logger:      logger,
		cfg:         cfg,
		gateway:     gw,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

func (s *PaymentServiceImpl) CreateCheckoutSession(ctx context.Context, traceID string, req views.CheckoutSessionRequest) (string, error) {
	if _, err := primitive.ObjectIDFromHex(req.OrderID); err != nil {
		return "", pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid order id", err)
	}
	if _, err := primitive.ObjectIDFromHex(req.BookID); err != nil {
		return "", pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id", err)
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, gateway.CreateSessionInput{
		UnitAmount:    int64(math.Round(req.Price * minorUnitScale)),
		Currency:      s.cfg.Currency,
		ProductName:   req.BookName,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    s.cfg.ClientOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.ClientOrigin + "/payment-cancelled",
		Metadata: map[string]string{
			gateway.MetaOrderID:        req.OrderID,
			gateway.MetaBookID:         req.BookID,
			gateway.MetaBookName:       req.BookName,
			gateway.MetaLibrarianEmail: req.LibrarianEmail,
		},
	})
	if err != nil {
		return "", pkg.NewAppError(pkg.ErrServerCode, "failed to create checkout session", err)
	}

	s.logger.Info("checkout session created",
		zap.String(pkg.TraceId, traceID),
		zap.String("sessionId", sess.ID),
		zap.String("orderId", req.OrderID),
	)
	return sess.URL, nil
}

func (s *PaymentServiceImpl) ConfirmPayment(ctx context.Context, traceID, sessionID string) (*views.PaymentConfirmation, error) {
	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrServerCode, "failed to retrieve checkout session", err)
	}

	if sess.PaymentStatus != gateway.SessionPaid {
		return nil, pkg.NewAppError(pkg.ErrPaymentNotCompletedCode,
			"checkout session is not paid", nil)
	}

	transactionID := sess.PaymentIntentID
	if transactionID == "" {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "checkout session carries no payment intent", nil)
	}

	meta, err := sessionMetadata(sess)
	if err != nil {
		return nil, err
	}

	// Fast path for retried callbacks (browser refresh, redirect replay).
	existing, err := s.paymentRepo.FindByTransactionID(ctx, transactionID)
	if err == nil {
		s.logger.Info("payment already recorded",
			zap.String(pkg.TraceId, traceID),
			zap.String("transactionId", transactionID),
		)
		return &views.PaymentConfirmation{
			AlreadyRecorded: true,
			TransactionID:   transactionID,
			PaymentID:       existing.ID.Hex(),
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}

	// Ledger first: the unique transactionId index converts a concurrent
	// double-confirmation into a duplicate-key conflict.
	payment := models.Payment{
		OrderID:        meta.orderID,
		BookID:         meta.bookID,
		BookName:       meta.bookName,
		LibrarianEmail: meta.librarianEmail,
		CustomerEmail:  sess.CustomerEmail,
		Amount:         float64(sess.AmountTotal) / minorUnitScale,
		Currency:       sess.Currency,
		TransactionID:  transactionID,
		PaymentStatus:  pkg.PaymentStatusPaid,
		PaidAt:         time.Now().UTC(),
	}
	paymentID, err := s.paymentRepo.Insert(ctx, payment)
	if err != nil {
		storeErr := pkg.HandleStoreError(traceID, s.logger, err)
		if pkg.HasCode(storeErr, pkg.ErrStoreDuplicateCode) {
			// A concurrent confirmation won the race.
			winner, findErr := s.paymentRepo.FindByTransactionID(ctx, transactionID)
			if findErr != nil {
				return nil, pkg.HandleStoreError(traceID, s.logger, findErr)
			}
			return &views.PaymentConfirmation{
				AlreadyRecorded: true,
				TransactionID:   transactionID,
				PaymentID:       winner.ID.Hex(),
			}, nil
		}
		return nil, storeErr
	}

	if _, err = s.orderRepo.MarkPaid(ctx, meta.orderID, transactionID); err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}

	s.logger.Info("payment recorded",
		zap.String(pkg.TraceId, traceID),
		zap.String("transactionId", transactionID),
		zap.String("orderId", meta.orderID.Hex()),
		zap.String("paymentId", paymentID.Hex()),
	)
	return &views.PaymentConfirmation{
		TransactionID: transactionID,
		PaymentID:     paymentID.Hex(),
	}, nil
}

func (s *PaymentServiceImpl) ListByCustomer(ctx context.Context, traceID, email string) ([]models.Payment, error) {
	payments, err := s.paymentRepo.FindByCustomer(ctx, email)
	if err != nil {
		return nil, pkg.HandleStoreError(traceID, s.logger, err)
	}
	return payments, nil
}

type checkoutMetadata struct {
	orderID        primitive.ObjectID
	bookID         primitive.ObjectID
	bookName       string
	librarianEmail string
}

// sessionMetadata validates the metadata attached at session creation. A
// session missing any field is rejected before any write happens.
func sessionMetadata(sess *gateway.CheckoutSession) (*checkoutMetadata, error) {
	orderHex := sess.Metadata[gateway.MetaOrderID]
	bookHex := sess.Metadata[gateway.MetaBookID]
	bookName := sess.Metadata[gateway.MetaBookName]
	librarianEmail := sess.Metadata[gateway.MetaLibrarianEmail]
	if orderHex == "" || bookHex == "" || bookName == "" || librarianEmail == "" {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "checkout session metadata is incomplete", nil)
	}

	orderID, err := primitive.ObjectIDFromHex(orderHex)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid order id in session metadata", err)
	}
	bookID, err := primitive.ObjectIDFromHex(bookHex)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid book id in session metadata", err)
	}

	return &checkoutMetadata{
		orderID:        orderID,
		bookID:         bookID,
		bookName:       bookName,
		librarianEmail: librarianEmail,
	}, nil
}
