package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/tupyy/property-search-agent/api/v1"
)

// ListMunicipalities returns the authorized municipalities
// (GET /municipalities)
func (h *Handler) ListMunicipalities(c *gin.Context) {
	municipalities, err := h.propertySrv.ListMunicipalities(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewReferenceEntities(municipalities))
}

// ListCollections returns the property collections
// (GET /collections)
func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.propertySrv.ListCollections(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewReferenceEntities(collections))
}

// SearchProperties runs a property search
// (POST /properties/search)
func (h *Handler) SearchProperties(c *gin.Context) {
	var req v1.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errCodeInvalidRequest, "invalid request body")
		return
	}

	criteria, err := req.ToModel()
	if err != nil {
		abort(c, http.StatusBadRequest, errCodeInvalidRequest, err.Error())
		return
	}

	records, err := h.propertySrv.SearchProperties(c.Request.Context(), criteria)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewSearchResponse(records))
}
