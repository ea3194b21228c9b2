package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-storefront/internal/application"
	handlers "github.com/oksasatya/go-storefront/internal/interface/http"
	"github.com/oksasatya/go-storefront/internal/interface/middleware"
)

// StorefrontModule: public pages, the price list and purchases.
type StorefrontModule struct {
	Handler *handlers.CatalogHandler
	Redis   *redis.Client
}

func NewStorefrontModule(h *handlers.CatalogHandler, rdb *redis.Client) *StorefrontModule {
	return &StorefrontModule{Handler: h, Redis: rdb}
}

func (m *StorefrontModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Index)
	rg.GET("/about", m.Handler.About)
	rg.GET("/terms", m.Handler.Terms)
	rg.GET("/price", m.Handler.Price)
	rg.GET("/price/search", m.Handler.Search)

	buyLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil)
	rg.GET("/price/buy/:id", middleware.Gate(application.Authenticated()), buyLimiter, m.Handler.Buy)
}
