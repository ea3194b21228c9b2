package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-storefront/internal/application"
	handlers "github.com/oksasatya/go-storefront/internal/interface/http"
	"github.com/oksasatya/go-storefront/internal/interface/middleware"
)

// ProfileModule: self-service for any signed-in user.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Gate(application.Authenticated()))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.GET("/profile/your_info", m.Handler.Profile)
		auth.POST("/profile/your_info", m.Handler.Profile)
		auth.GET("/profile/your_history", m.Handler.History)

		auth.GET("/emailModal", m.Handler.EmailModal)
		auth.POST("/emailModal", m.Handler.EmailModal)
		auth.GET("/nameModal", m.Handler.NameModal)
		auth.POST("/nameModal", m.Handler.NameModal)
		auth.GET("/phone_numberModal", m.Handler.PhoneModal)
		auth.POST("/phone_numberModal", m.Handler.PhoneModal)

		auth.GET("/delete_user/:id", m.Handler.DeleteSelf)
	}
}
