package middleware

import (
	"context"

	"give-hub/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestId() func(c *gin.Context) {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(logger.RequestIdKey, id)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(logger.RequestIdKey, id)
		c.Next()
	}
}
