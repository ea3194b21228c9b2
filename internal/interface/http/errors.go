package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/pkg/helpers"
	"github.com/oksasatya/go-storefront/pkg/response"
	"github.com/oksasatya/go-storefront/pkg/validation"
)

// respondError maps application errors onto HTTP statuses.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, application.ErrNotOwnAccount):
		response.Error[any](c, http.StatusForbidden, "You can only delete your own account", nil)
	case errors.Is(err, application.ErrAuth):
		response.Error[any](c, http.StatusUnauthorized, "login required", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, application.ErrPaymentGateway):
		response.Error[any](c, http.StatusBadGateway, "payment provider unavailable", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// pathID parses :id; anything but a positive integer is a 404, like an unmatched route.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return 0, false
	}
	return id, true
}

func principal(c *gin.Context) *application.Principal {
	p, _ := application.PrincipalFrom(c.Request.Context())
	return p
}
