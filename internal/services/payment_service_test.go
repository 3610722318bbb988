package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/booknest/booknest-server/configs"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/gateway"
	"github.com/booknest/booknest-server/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakePaymentRepo enforces the transactionId unique index the way the store
// does: a second insert for the same transaction fails with a duplicate-key
// write error. findMisses forces the read-then-write gap for race tests.
type fakePaymentRepo struct {
	byTxn      map[string]models.Payment
	inserts    int
	findMisses int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byTxn: make(map[string]models.Payment)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
}

func (f *fakePaymentRepo) Insert(_ context.Context, payment models.Payment) (primitive.ObjectID, error) {
	if _, ok := f.byTxn[payment.TransactionID]; ok {
		return primitive.NilObjectID, duplicateKeyErr()
	}
	payment.ID = primitive.NewObjectID()
	f.byTxn[payment.TransactionID] = payment
	f.inserts++
	return payment.ID, nil
}

func (f *fakePaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	if f.findMisses > 0 {
		f.findMisses--
		return nil, mongo.ErrNoDocuments
	}
	p, ok := f.byTxn[transactionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakePaymentRepo) FindByCustomer(_ context.Context, email string) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, p := range f.byTxn {
		if p.CustomerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeGateway mints sessions in memory and echoes metadata back on retrieval.
type fakeGateway struct {
	sessions  map[string]*gateway.CheckoutSession
	lastInput gateway.CreateSessionInput
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*gateway.CheckoutSession)}
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, in gateway.CreateSessionInput) (*gateway.CheckoutSession, error) {
	f.lastInput = in
	id := fmt.Sprintf("cs_test_%d", len(f.sessions)+1)
	sess := &gateway.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.test/pay/" + id,
		PaymentStatus: gateway.SessionUnpaid,
		CustomerEmail: in.CustomerEmail,
		Currency:      strings.ToUpper(in.Currency),
		AmountTotal:   in.UnitAmount,
		Metadata:      in.Metadata,
	}
	f.sessions[id] = sess
	return sess, nil
}

func (f *fakeGateway) RetrieveSession(_ context.Context, sessionID string) (*gateway.CheckoutSession, error) {
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

func (f *fakeGateway) markPaid(sessionID, paymentIntentID string) {
	sess := f.sessions[sessionID]
	sess.PaymentStatus = gateway.SessionPaid
	sess.PaymentIntentID = paymentIntentID
}

func paymentTestConfig() *configs.Config {
	return &configs.Config{
		Currency:     "usd",
		ClientOrigin: "http://localhost:5173",
	}
}

type paymentFixture struct {
	svc         PaymentService
	gw          *fakeGateway
	paymentRepo *fakePaymentRepo
	orderRepo   *fakeOrderRepo
	order       models.Order
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	order := orderWithStatus(pkg.OrderStatusPending)
	gw := newFakeGateway()
	paymentRepo := newFakePaymentRepo()
	orderRepo := newFakeOrderRepo(order)
	svc := NewPaymentService(zap.NewNop(), paymentTestConfig(), gw, paymentRepo, orderRepo)
	return &paymentFixture{svc: svc, gw: gw, paymentRepo: paymentRepo, orderRepo: orderRepo, order: order}
}

func (fx *paymentFixture) checkoutRequest() views.CheckoutSessionRequest {
	return views.CheckoutSessionRequest{
		Price:          fx.order.Price,
		BookName:       fx.order.BookName,
		OrderID:        fx.order.ID.Hex(),
		BookID:         fx.order.BookID.Hex(),
		LibrarianEmail: fx.order.LibrarianEmail,
		CustomerEmail:  fx.order.CustomerEmail,
	}
}

func TestCreateCheckoutSession_ConvertsToMinorUnits(t *testing.T) {
	fx := newPaymentFixture(t)
	req := fx.checkoutRequest()
	req.Price = 12.49

	url, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", req)

	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Equal(t, int64(1249), fx.gw.lastInput.UnitAmount)
	assert.Equal(t, fx.order.ID.Hex(), fx.gw.lastInput.Metadata[gateway.MetaOrderID])
	assert.Equal(t, fx.order.BookID.Hex(), fx.gw.lastInput.Metadata[gateway.MetaBookID])
	assert.Equal(t, fx.order.BookName, fx.gw.lastInput.Metadata[gateway.MetaBookName])
	assert.Equal(t, fx.order.LibrarianEmail, fx.gw.lastInput.Metadata[gateway.MetaLibrarianEmail])
}

func TestCreateCheckoutSession_MalformedOrderID(t *testing.T) {
	fx := newPaymentFixture(t)
	req := fx.checkoutRequest()
	req.OrderID = "not-an-object-id"

	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", req)

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrInvalidInputCode))
	assert.Empty(t, fx.gw.sessions)
}

func TestConfirmPayment_UnpaidSessionMutatesNothing(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)

	_, err = fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrPaymentNotCompletedCode))
	assert.Zero(t, fx.paymentRepo.inserts)
	assert.Zero(t, fx.orderRepo.paidWrites)
	assert.Equal(t, pkg.PaymentStatusUnpaid, fx.orderRepo.orders[fx.order.ID].PaymentStatus)
}

func TestConfirmPayment_RoundTripsTheAmount(t *testing.T) {
	fx := newPaymentFixture(t)
	req := fx.checkoutRequest()
	req.Price = 24.99
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", req)
	require.NoError(t, err)
	fx.gw.markPaid("cs_test_1", "pi_round_trip")

	out, err := fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, "pi_round_trip", out.TransactionID)
	recorded := fx.paymentRepo.byTxn["pi_round_trip"]
	assert.Equal(t, 24.99, recorded.Amount)
	assert.Equal(t, "USD", recorded.Currency)
	assert.Equal(t, fx.order.ID, recorded.OrderID)
}

func TestConfirmPayment_SecondCallIsIdempotent(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)
	fx.gw.markPaid("cs_test_1", "pi_once")

	first, err := fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")
	require.NoError(t, err)
	assert.False(t, first.AlreadyRecorded)

	second, err := fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")
	require.NoError(t, err)
	assert.True(t, second.AlreadyRecorded)
	assert.Equal(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, first.PaymentID, second.PaymentID)

	assert.Equal(t, 1, fx.paymentRepo.inserts, "exactly one ledger entry")
	assert.Equal(t, 1, fx.orderRepo.paidWrites, "exactly one order paid-transition")
}

// Two confirmations race past the ledger lookup; the unique index turns the
// loser's insert into a duplicate-key conflict, reported as already recorded.
func TestConfirmPayment_ConcurrentDuplicateResolvedByUniqueIndex(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)
	fx.gw.markPaid("cs_test_1", "pi_raced")
	fx.paymentRepo.findMisses = 2 // both callers miss the fast-path lookup

	first, err := fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")
	require.NoError(t, err)
	assert.False(t, first.AlreadyRecorded)

	second, err := fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")
	require.NoError(t, err)
	assert.True(t, second.AlreadyRecorded)
	assert.Equal(t, first.PaymentID, second.PaymentID)

	assert.Equal(t, 1, fx.paymentRepo.inserts, "exactly one ledger entry survives the race")
}

func TestConfirmPayment_IncompleteMetadataRejectedBeforeAnyWrite(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)
	fx.gw.markPaid("cs_test_1", "pi_bad_meta")
	delete(fx.gw.sessions["cs_test_1"].Metadata, gateway.MetaOrderID)

	_, err = fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrInvalidInputCode))
	assert.Zero(t, fx.paymentRepo.inserts)
	assert.Zero(t, fx.orderRepo.paidWrites)
}

func TestConfirmPayment_MissingPaymentIntentRejected(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)
	fx.gw.sessions["cs_test_1"].PaymentStatus = gateway.SessionPaid // paid but no intent id

	_, err = fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")

	require.Error(t, err)
	assert.True(t, pkg.HasCode(err, pkg.ErrInvalidInputCode))
	assert.Zero(t, fx.paymentRepo.inserts)
}

func TestConfirmPayment_MarksTheOrderPaid(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CreateCheckoutSession(context.Background(), "trace", fx.checkoutRequest())
	require.NoError(t, err)
	fx.gw.markPaid("cs_test_1", "pi_order_update")

	_, err = fx.svc.ConfirmPayment(context.Background(), "trace", "cs_test_1")
	require.NoError(t, err)

	stored := fx.orderRepo.orders[fx.order.ID]
	assert.Equal(t, pkg.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, pkg.OrderStatusPending, stored.OrderStatus)
	assert.Equal(t, "pi_order_update", stored.TransactionID)
}
