package handler

import (
	"errors"
	"net/http"

	"github.com/devstats/social-card-service/internal/dto"
	"github.com/devstats/social-card-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errUsernameRequired = errors.New("username is required")
	errInvalidID        = errors.New("invalid ID")
)

// cardError translates service errors into the coarse external statuses:
// collapsed generation failures read as a missing card, rate-limit exhaustion
// keeps its own status, anything else is a remote API failure.
func (h *Handler) cardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCardNotFound):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrRateLimitExceeded):
		c.JSON(http.StatusTooManyRequests, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrInternal):
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusBadGateway, dto.NewBasicResponse(false, err.Error()))
	}
}
