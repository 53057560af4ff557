package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Everything under /api requires a valid bearer token.
	api := router.Group("/api")
	api.Use(auth.Middleware(cfg.AuthService))

	importController := NewTemplateImportController(cfg.Pipeline, cfg.Auditor, cfg.MaxImportBytes)
	// Imports are restricted to coordinators; the role check runs before
	// any of the request body is parsed.
	api.POST("/imports/templates",
		auth.RequireRole(entities.UserRoleCoordinator),
		importController.Import)

	if cfg.ImportStore != nil {
		importsController := NewImportsController(cfg.ImportStore)
		api.GET("/imports", importsController.ListImports)
		api.GET("/imports/:id", importsController.GetImport)
	}

	if cfg.TemplateStore != nil {
		templatesController := NewTemplatesController(cfg.TemplateStore)
		api.GET("/templates", templatesController.ListTemplates)
		api.GET("/templates/:id", templatesController.GetTemplate)
	}

	return router
}
