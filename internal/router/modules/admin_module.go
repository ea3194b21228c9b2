package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
	handlers "github.com/oksasatya/go-storefront/internal/interface/http"
	"github.com/oksasatya/go-storefront/internal/interface/middleware"
)

// AdminPolicy guards every route of AdminModule.
var AdminPolicy = application.All(application.Authenticated(), application.RequireRole(entity.RoleAdmin))

type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/")
	admin.Use(middleware.Gate(AdminPolicy))
	{
		admin.GET("/profile/admin", m.Handler.Dashboard)
		admin.GET("/profile/admin/:name", m.Handler.Section)
		admin.POST("/profile/admin/items/add", m.Handler.AddItem)
		admin.POST("/profile/admin/items/edit_item/:id", m.Handler.EditItem)
		admin.GET("/delete/:id", m.Handler.DeleteItem)
		admin.GET("/delete_user_admin/:id", m.Handler.DeleteUser)
	}
}
