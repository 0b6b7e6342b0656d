package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) requestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Header("X-Request-ID", requestID)
	c.Set("request-id", requestID)

	c.Next()
}
