package http

import (
	"github.com/dealdesk/dealdesk/internal/audit"
	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/database"
	"github.com/dealdesk/dealdesk/internal/database/imports"
	"github.com/dealdesk/dealdesk/internal/database/templates"
	"github.com/dealdesk/dealdesk/internal/importer"
)

// RouterConfig holds all dependencies for the HTTP router.
// Use this instead of passing many parameters to NewRouter.
type RouterConfig struct {
	Database    *database.Database
	AuthService *auth.Service
	Auditor     *audit.Service

	Pipeline      *importer.Pipeline
	ImportStore   *imports.Repository
	TemplateStore *templates.Repository

	// MaxImportBytes caps the accepted upload size for import payloads.
	MaxImportBytes int64

	Version string
}
