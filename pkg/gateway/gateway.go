package gateway

import "context"

// Session payment statuses as reported by the gateway.
const (
	SessionPaid   = "paid"
	SessionUnpaid = "unpaid"
)

// Metadata keys attached at session creation and read back verbatim during
// confirmation.
const (
	MetaOrderID        = "orderId"
	MetaBookID         = "bookId"
	MetaBookName       = "bookName"
	MetaLibrarianEmail = "librarianEmail"
)

// CreateSessionInput describes one checkout session. UnitAmount is in the
// gateway's minor units (e.g. cents); callers convert from major units before
// reaching this boundary.
type CreateSessionInput struct {
	UnitAmount    int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the gateway-neutral view of a session. AmountTotal is in
// minor units.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	CustomerEmail   string
	Currency        string
	AmountTotal     int64
	Metadata        map[string]string
}

// PaymentGateway is the external checkout collaborator. Implementations must
// echo Metadata back unchanged on retrieval.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in CreateSessionInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
