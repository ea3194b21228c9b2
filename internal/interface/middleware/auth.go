package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// SessionResolver turns an access token into the calling principal.
type SessionResolver interface {
	CurrentPrincipal(ctx context.Context, accessToken string) (*application.Principal, error)
}

// Auth loads the principal behind the access_token cookie into the request context.
// Requests without a valid session continue anonymously; Gate decides what they may reach.
func Auth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		p, err := resolver.CurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(application.WithPrincipal(c.Request.Context(), p))
		c.Set("userID", strconv.FormatInt(p.UserID, 10)) // rate limit key
		c.Next()
	}
}
