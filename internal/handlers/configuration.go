package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tupyy/property-search-agent/api/v1"
)

// GetConfigurationStatus tells whether the service is configured
// (GET /configuration/status)
func (h *Handler) GetConfigurationStatus(c *gin.Context) {
	configured, err := h.propertySrv.IsConfigured(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConfigurationStatus{Configured: configured})
}

// GetConfiguration returns the configuration with the API key masked
// (GET /configuration)
func (h *Handler) GetConfiguration(c *gin.Context) {
	cfg, err := h.propertySrv.Configuration(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if cfg == nil {
		abort(c, http.StatusNotFound, errCodeNotConfigured, "no configuration saved")
		return
	}

	var resp v1.Configuration
	resp.FromModel(*cfg)

	c.JSON(http.StatusOK, resp)
}

// PutConfiguration saves the configuration
// (PUT /configuration)
func (h *Handler) PutConfiguration(c *gin.Context) {
	var req v1.Configuration
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errCodeInvalidRequest, "invalid request body")
		return
	}

	cfg := req.ToModel()
	if err := h.propertySrv.SaveConfiguration(c.Request.Context(), cfg); err != nil {
		abortWithError(c, err)
		return
	}

	saved, err := h.propertySrv.Configuration(c.Request.Context())
	if err != nil || saved == nil {
		saved = &cfg
	}

	var resp v1.Configuration
	resp.FromModel(*saved)

	c.JSON(http.StatusOK, resp)
}

// TestConnection checks an API key against the data provider
// (POST /configuration/test)
func (h *Handler) TestConnection(c *gin.Context) {
	var req v1.ConnectionTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errCodeInvalidRequest, "invalid request body")
		return
	}

	connected, err := h.propertySrv.TestConnection(c.Request.Context(), req.ApiKey)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.ConnectionTestResponse{Connected: connected})
}
