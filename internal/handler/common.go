package handler

import (
	"SafeCampus/internal/middleware"
	"SafeCampus/internal/pkg"

	"github.com/gin-gonic/gin"
)

// fail writes the error with the status of its kind.
func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
