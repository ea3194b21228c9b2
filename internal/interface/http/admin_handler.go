package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/response"
)

const (
	adminItemsPath = "/profile/admin/items"
	adminUsersPath = "/profile/admin/users"
)

type AdminHandler struct {
	Accounts *application.AccountService
	Catalog  *application.CatalogService
	Logger   *logrus.Logger
}

func NewAdminHandler(accounts *application.AccountService, catalog *application.CatalogService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Accounts: accounts, Catalog: catalog, Logger: logger}
}

type itemForm struct {
	Name  string `json:"name" form:"name" binding:"required,max=100"`
	Price int64  `json:"price" form:"price" binding:"gte=0,lte=1000000000"`
	Intro string `json:"intro" form:"intro" binding:"required"`
}

func (f itemForm) input() application.ItemInput {
	return application.ItemInput{Name: f.Name, Price: f.Price, Intro: f.Intro}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"sections": []string{"users", "items"}}, "admin", nil)
}

// Section lists users or items; any other name goes back to the storefront.
func (h *AdminHandler) Section(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("name") {
	case "users":
		users, err := h.Accounts.ListUsers(ctx)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		out := make([]userView, 0, len(users))
		for i := range users {
			out = append(out, toUserView(&users[i]))
		}
		response.Success(c, http.StatusOK, out, "users", nil)
	case "items":
		items, err := h.Catalog.ListItems(ctx)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		response.Success(c, http.StatusOK, toItemViews(items), "items", nil)
	default:
		c.Redirect(http.StatusFound, "/")
	}
}

func (h *AdminHandler) AddItem(c *gin.Context) {
	var f itemForm
	if err := c.ShouldBind(&f); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.Catalog.AddItem(c.Request.Context(), f.input()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, adminItemsPath)
}

func (h *AdminHandler) EditItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var f itemForm
	if err := c.ShouldBind(&f); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.Catalog.EditItem(c.Request.Context(), id, f.input()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, adminItemsPath)
}

func (h *AdminHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, adminItemsPath)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Accounts.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, adminUsersPath)
}
