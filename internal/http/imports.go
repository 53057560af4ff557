package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/database/imports"
)

// ImportsController exposes read access to import run records.
type ImportsController struct {
	store *imports.Repository
}

func NewImportsController(store *imports.Repository) *ImportsController {
	return &ImportsController{store: store}
}

// ListImports handles GET /api/imports
func (controller *ImportsController) ListImports(c *gin.Context) {
	limit, offset := parsePagination(c)

	records, total, err := controller.store.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list imports")
		return
	}

	c.IndentedJSON(http.StatusOK, PaginatedResponse{
		Data:    records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(records)) < total,
	})
}

// GetImport handles GET /api/imports/:id
func (controller *ImportsController) GetImport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	record, err := controller.store.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "import")
			return
		}
		respondInternalError(c, err, "get import")
		return
	}

	c.IndentedJSON(http.StatusOK, record)
}
