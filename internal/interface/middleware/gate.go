package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/response"
)

// Gate evaluates one policy before the handler runs.
func Gate(policy application.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := application.Authorize(c.Request.Context(), policy)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, application.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, "forbidden", err.Error())
			c.Abort()
		default:
			response.Error[any](c, http.StatusUnauthorized, "login required", nil)
			c.Abort()
		}
	}
}
