package v1

import (
	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /configuration/status)
	GetConfigurationStatus(c *gin.Context)
	// (GET /configuration)
	GetConfiguration(c *gin.Context)
	// (PUT /configuration)
	PutConfiguration(c *gin.Context)
	// (POST /configuration/test)
	TestConnection(c *gin.Context)
	// (GET /municipalities)
	ListMunicipalities(c *gin.Context)
	// (GET /collections)
	ListCollections(c *gin.Context)
	// (POST /properties/search)
	SearchProperties(c *gin.Context)
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	router.GET("/configuration/status", si.GetConfigurationStatus)
	router.GET("/configuration", si.GetConfiguration)
	router.PUT("/configuration", si.PutConfiguration)
	router.POST("/configuration/test", si.TestConnection)
	router.GET("/municipalities", si.ListMunicipalities)
	router.GET("/collections", si.ListCollections)
	router.POST("/properties/search", si.SearchProperties)
}
