package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskpulse/pkg/apierrors"
)

const ownerHeader = "X-Owner-ID"

// OwnerMiddleware resolves the calling owner from the X-Owner-ID header.
// Authentication happens upstream; by the time a request reaches this
// service the header carries a verified owner UUID.
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		raw := c.GetHeader(ownerHeader)
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidOwner, lang),
			)
			return
		}

		c.Set("owner_id", ownerID.String())
		c.Next()
	}
}

func GetOwnerID(c *gin.Context) string {
	if ownerID, exists := c.Get("owner_id"); exists {
		if s, ok := ownerID.(string); ok {
			return s
		}
	}
	return ""
}
