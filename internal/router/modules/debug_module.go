package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-storefront/internal/interface/middleware"
)

type DebugModule struct {
	Metrics bool
}

func NewDebugModule(metrics bool) *DebugModule { return &DebugModule{Metrics: metrics} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if m.Metrics {
		// scraped from inside the cluster only
		rg.GET("/metrics", middleware.Only(middleware.AllowPrivateIP()), gin.WrapH(promhttp.Handler()))
	}
}
