package handlers

import (
	"net/http"

	"github.com/booknest/booknest-server/internal/services"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookHandler struct {
	logger  *zap.Logger
	service services.BookService
}

func NewBookHandler(logger *zap.Logger, svc services.BookService) *BookHandler {
	return &BookHandler{logger: logger, service: svc}
}

// RegisterRoutes registers book routes on the provided Gin group.
func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/books", h.CreateBook)
	r.GET("/books", h.ListBooks)
	r.DELETE("/books/:id", h.DeleteBook)
	r.GET("/book/:id", h.GetBook)
	r.GET("/my-books/:email", h.ListMyBooks)
	r.PATCH("/update-book/:id", h.UpdateBook)
	r.PATCH("/update-book-status/:id", h.UpdateBookStatus)
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), trace, req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	books, err := h.service.List(c.Request.Context(), trace)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	book, err := h.service.Get(c.Request.Context(), trace, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) ListMyBooks(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	books, err := h.service.ListByLibrarian(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), trace, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateBookStatus sets the publication status directly; books have no
// terminal states, so no transition guard applies here.
func (h *BookHandler) UpdateBookStatus(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.UpdateBookStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), trace, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Delete(c.Request.Context(), trace, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
