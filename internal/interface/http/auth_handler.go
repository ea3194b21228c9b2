package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/helpers"
	"github.com/oksasatya/go-storefront/pkg/response"
)

type AuthHandler struct {
	Identity *application.IdentityService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAuthHandler(identity *application.IdentityService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Identity: identity, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type registerRequest struct {
	Email       string `json:"email" form:"email" binding:"required,email,max=255"`
	Password    string `json:"password" form:"password" binding:"required,pwd"`
	FirstName   string `json:"first_name" form:"first_name" binding:"required,max=45"`
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"required,phone"`
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"fields": []string{"email", "password"}}, "login", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	u, pair, err := h.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrAuth) {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, toUserView(u), "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"fields": []string{"email", "password", "first_name", "phone_number"}}, "register", nil)
}

// Register creates the account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.Identity.Register(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	pair, err := h.Identity.IssueTokens(c.Request.Context(), u)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, toUserView(u), "registered", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Identity.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, nil, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout ends the session if there is one and always clears the cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	if p := principal(c); p != nil {
		if err := h.Identity.Logout(c.Request.Context(), p.UserID); err != nil {
			respondError(c, h.Logger, err)
			return
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
