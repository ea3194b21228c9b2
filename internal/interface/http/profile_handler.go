package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/pkg/helpers"
	"github.com/oksasatya/go-storefront/pkg/response"
)

const yourInfoPath = "/profile/your_info"

type ProfileHandler struct {
	Accounts *application.AccountService
	Catalog  *application.CatalogService
	Identity *application.IdentityService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewProfileHandler(accounts *application.AccountService, catalog *application.CatalogService, identity *application.IdentityService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *ProfileHandler {
	return &ProfileHandler{
		Accounts: accounts,
		Catalog:  catalog,
		Identity: identity,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
		Logger:   logger,
	}
}

type emailForm struct {
	Email string `json:"email" form:"email" binding:"required,email,max=255"`
}

type nameForm struct {
	Name string `json:"name" form:"name" binding:"required,max=45"`
}

type phoneForm struct {
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"required,phone"`
}

func (h *ProfileHandler) Profile(c *gin.Context) {
	u, err := h.Accounts.ViewProfile(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile", gin.H{"is_admin": u.HasRole(entity.RoleAdmin)})
}

func (h *ProfileHandler) EmailModal(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Redirect(http.StatusFound, yourInfoPath)
		return
	}
	var f emailForm
	if err := c.ShouldBind(&f); err != nil {
		bindError(c, err)
		return
	}
	h.afterEdit(c)(h.Accounts.EditEmail(c.Request.Context(), principal(c).UserID, f.Email))
}

func (h *ProfileHandler) NameModal(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Redirect(http.StatusFound, yourInfoPath)
		return
	}
	var f nameForm
	if err := c.ShouldBind(&f); err != nil {
		bindError(c, err)
		return
	}
	h.afterEdit(c)(h.Accounts.EditName(c.Request.Context(), principal(c).UserID, f.Name))
}

func (h *ProfileHandler) PhoneModal(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Redirect(http.StatusFound, yourInfoPath)
		return
	}
	var f phoneForm
	if err := c.ShouldBind(&f); err != nil {
		bindError(c, err)
		return
	}
	h.afterEdit(c)(h.Accounts.EditPhone(c.Request.Context(), principal(c).UserID, f.PhoneNumber))
}

func (h *ProfileHandler) afterEdit(c *gin.Context) func(*entity.User, error) {
	return func(_ *entity.User, err error) {
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		c.Redirect(http.StatusFound, yourInfoPath)
	}
}

func (h *ProfileHandler) History(c *gin.Context) {
	orders, err := h.Catalog.ListOrdersFor(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderViews(orders), "orders", nil)
}

// DeleteSelf removes the caller's account and signs them out.
func (h *ProfileHandler) DeleteSelf(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p := principal(c)
	if err := h.Accounts.DeleteSelf(c.Request.Context(), p.UserID, id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if err := h.Identity.Logout(c.Request.Context(), p.UserID); err != nil {
		helpers.LogError(h.Logger, "drop session after self delete failed", err, logrus.Fields{"user_id": p.UserID})
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
