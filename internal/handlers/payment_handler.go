package handlers

import (
	"net/http"

	"github.com/booknest/booknest-server/internal/services"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	logger  *zap.Logger
	service services.PaymentService
}

func NewPaymentHandler(logger *zap.Logger, svc services.PaymentService) *PaymentHandler {
	return &PaymentHandler{logger: logger, service: svc}
}

// RegisterRoutes registers payment routes on the provided Gin group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/payment-checkout-session", h.CreateCheckoutSession)
	r.PATCH("/payment-success", h.PaymentSuccess)
	r.GET("/payments/:email", h.ListPayments)
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	url, err := h.service.CreateCheckoutSession(c.Request.Context(), trace, req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PaymentSuccess confirms a completed checkout session. Re-submissions of the
// same session report the payment as already recorded without new writes.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	sessionID := c.Query("session_id")
	if utils.IsEmpty(sessionID) {
		respondError(c, h.logger, trace,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "session_id is required", nil))
		return
	}

	out, err := h.service.ConfirmPayment(c.Request.Context(), trace, sessionID)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}

	if out.AlreadyRecorded {
		c.JSON(http.StatusOK, gin.H{
			"message":       "payment already recorded",
			"transactionId": out.TransactionID,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transactionId": out.TransactionID,
		"paymentId":     out.PaymentID,
	})
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	payments, err := h.service.ListByCustomer(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
