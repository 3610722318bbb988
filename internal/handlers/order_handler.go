package handlers

import (
	"net/http"

	"github.com/booknest/booknest-server/internal/services"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	logger  *zap.Logger
	service services.OrderService
}

func NewOrderHandler(logger *zap.Logger, svc services.OrderService) *OrderHandler {
	return &OrderHandler{logger: logger, service: svc}
}

// RegisterRoutes registers order routes on the provided Gin group.
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/orders", h.CreateOrder)
	r.DELETE("/orders/:id", h.DeleteOrder)
	r.GET("/my-orders/:email", h.ListMyOrders)
	r.GET("/librian/orders/:email", h.ListLibrarianOrders)
	r.PATCH("/librian/update-status/:id", h.UpdateStatus)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), trace, req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), trace, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListByCustomer(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListLibrarianOrders(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListByLibrarian(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus is the librarian-facing lifecycle transition. Invalid statuses
// and terminal-state violations come back as 400, unknown orders as 404.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), trace, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}
