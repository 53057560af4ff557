package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/database/templates"
)

// TemplatesController exposes read access to workflow templates.
type TemplatesController struct {
	store *templates.Repository
}

func NewTemplatesController(store *templates.Repository) *TemplatesController {
	return &TemplatesController{store: store}
}

// ListTemplates handles GET /api/templates
func (controller *TemplatesController) ListTemplates(c *gin.Context) {
	all, err := controller.store.ListTemplates()
	if err != nil {
		respondInternalError(c, err, "list templates")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"templates": all,
		"count":     len(all),
	})
}

// GetTemplate handles GET /api/templates/:id
// Tasks are returned in their stored sort order.
func (controller *TemplatesController) GetTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tmpl, err := controller.store.GetTemplate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "template")
			return
		}
		respondInternalError(c, err, "get template")
		return
	}

	c.IndentedJSON(http.StatusOK, tmpl)
}
