package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/response"
)

type CatalogHandler struct {
	Catalog  *application.CatalogService
	Checkout *application.CheckoutService
	AppName  string
	Logger   *logrus.Logger
}

func NewCatalogHandler(catalog *application.CatalogService, checkout *application.CheckoutService, appName string, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Checkout: checkout, AppName: appName, Logger: logger}
}

func (h *CatalogHandler) Index(c *gin.Context) {
	data := gin.H{"name": h.AppName, "authenticated": false}
	if p := principal(c); p != nil {
		data["authenticated"] = true
		data["email"] = p.Email
	}
	response.Success(c, http.StatusOK, data, "welcome", nil)
}

func (h *CatalogHandler) About(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"name": h.AppName}, "about", nil)
}

func (h *CatalogHandler) Terms(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"name": h.AppName}, "terms", nil)
}

func (h *CatalogHandler) Price(c *gin.Context) {
	items, err := h.Catalog.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemViews(items), "items", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Catalog.SearchItems(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toItemViews(items), "search results", gin.H{"q": c.Query("q")})
}

// Buy starts a purchase and sends the browser to the payment page.
func (h *CatalogHandler) Buy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	url, err := h.Checkout.InitiatePurchase(c.Request.Context(), id, principal(c).UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
