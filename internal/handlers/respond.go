package handlers

import (
	"net/http"

	"github.com/booknest/booknest-server/pkg"
	"github.com/booknest/booknest-server/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// traceID extracts the request trace id; a missing id means the middleware
// chain is broken, which is a server fault.
func traceID(c *gin.Context, logger *zap.Logger) (string, bool) {
	id, err := utils.GetTraceID(c)
	if err != nil {
		logger.Error("trace id missing from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{
			Status:  http.StatusInternalServerError,
			Code:    pkg.ErrServerCode.Code,
			Message: pkg.ErrServerCode.Message,
		})
		return "", false
	}
	return id, true
}

func respondError(c *gin.Context, logger *zap.Logger, traceID string, err error) {
	resp := pkg.ToErrorResponse(logger, traceID, err)
	c.JSON(resp.Status, resp)
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    pkg.ErrInvalidInputCode.Code,
		Message: "invalid request body",
		Details: err.Error(),
	})
}
