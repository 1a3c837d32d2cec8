package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/services"
	"github.com/tupyy/property-search-agent/internal/validation"
)

const (
	errCodeInvalidRequest = "invalid_request"
	errCodeValidation     = "validation_error"
	errCodeNotConfigured  = "not_configured"
	errCodeForbidden      = "forbidden"
	errCodeInternal       = "internal_error"
)

type Handler struct {
	propertySrv *services.PropertyService
}

func New(propertySrv *services.PropertyService) *Handler {
	return &Handler{propertySrv: propertySrv}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, v1.Error{Error: code, Message: message})
}

// abortWithError maps a service error to its HTTP status.
func abortWithError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		abort(c, http.StatusBadRequest, errCodeValidation, verr.Reason)
	case errors.Is(err, services.ErrNotConfigured):
		abort(c, http.StatusConflict, errCodeNotConfigured, err.Error())
	case errors.Is(err, services.ErrMunicipalityNotAuthorized):
		abort(c, http.StatusForbidden, errCodeForbidden, err.Error())
	default:
		zap.S().Named("handlers").Errorw("request failed", "path", c.FullPath(), "error", err)
		abort(c, http.StatusInternalServerError, errCodeInternal, err.Error())
	}
}
