package handlers

import (
	"net/http"

	"github.com/booknest/booknest-server/internal/services"
	"github.com/booknest/booknest-server/internal/views"
	"github.com/booknest/booknest-server/pkg"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	logger  *zap.Logger
	service services.UserService
}

func NewUserHandler(logger *zap.Logger, svc services.UserService) *UserHandler {
	return &UserHandler{logger: logger, service: svc}
}

// RegisterRoutes registers user routes on the provided Gin group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users", h.SearchUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/:email", h.GetUser)
	r.GET("/users/:email/role", h.GetUserRole)
	r.PATCH("/users/:email/profile", h.UpdateProfile)
	r.PATCH("/users/:email/role", h.UpdateRole)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	users, err := h.service.Search(c.Request.Context(), trace, c.Query("searchText"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, created, err := h.service.Create(c.Request.Context(), trace, req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "user exists"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	user, err := h.service.GetByEmail(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUserRole(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	role, err := h.service.GetRole(c.Request.Context(), trace, c.Param("email"))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	modified, err := h.service.UpdateProfile(c.Request.Context(), trace, c.Param("email"), req)
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	trace, ok := traceID(c, h.logger)
	if !ok {
		return
	}

	var req views.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	modified, err := h.service.UpdateRole(c.Request.Context(), trace, c.Param("email"), pkg.UserRole(req.Role))
	if err != nil {
		respondError(c, h.logger, trace, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}
