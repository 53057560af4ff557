package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/dealdesk/internal/audit"
	"github.com/dealdesk/dealdesk/internal/importer"
)

// TemplateImportRequest is the JSON request body for a template import.
// Document carries the raw export XML as a string.
type TemplateImportRequest struct {
	Filename string `json:"filename"`
	Document string `json:"document"`
}

// TemplateImportResponse reports the outcome of an import run.
// On failure the counters reflect whatever was written before the run
// stopped; re-running the import skips anything already present.
type TemplateImportResponse struct {
	Success           bool   `json:"success"`
	ImportID          uint   `json:"import_id,omitempty"`
	TemplatesImported int    `json:"templates_imported"`
	TasksImported     int    `json:"tasks_imported"`
	EmailsImported    int    `json:"emails_imported"`
	Error             string `json:"error,omitempty"`
}

// TemplateImportController handles legacy export imports.
type TemplateImportController struct {
	Pipeline *importer.Pipeline
	Auditor  *audit.Service
	MaxBytes int64
}

// NewTemplateImportController creates a new TemplateImportController.
func NewTemplateImportController(pipeline *importer.Pipeline, auditor *audit.Service, maxBytes int64) *TemplateImportController {
	return &TemplateImportController{
		Pipeline: pipeline,
		Auditor:  auditor,
		MaxBytes: maxBytes,
	}
}

// Import handles POST /api/imports/templates.
// Accepts either a JSON body with the document inline or a multipart
// upload with a "file" part.
func (controller *TemplateImportController) Import(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	filename, payload, ok := controller.readPayload(c)
	if !ok {
		return
	}

	result, err := controller.Pipeline.Run(filename, payload, userID)

	if controller.Auditor != nil {
		controller.Auditor.LogImport(userID, result.ImportID, filename,
			result.TemplatesImported, result.TasksImported, result.EmailsImported, err)
	}

	if err != nil {
		c.IndentedJSON(http.StatusUnprocessableEntity, TemplateImportResponse{
			Success:           false,
			ImportID:          result.ImportID,
			TemplatesImported: result.TemplatesImported,
			TasksImported:     result.TasksImported,
			EmailsImported:    result.EmailsImported,
			Error:             err.Error(),
		})
		return
	}

	c.IndentedJSON(http.StatusOK, TemplateImportResponse{
		Success:           true,
		ImportID:          result.ImportID,
		TemplatesImported: result.TemplatesImported,
		TasksImported:     result.TasksImported,
		EmailsImported:    result.EmailsImported,
	})
}

// readPayload extracts the export document from the request. Responds with
// an error and returns ok=false when the request carries no usable payload.
func (controller *TemplateImportController) readPayload(c *gin.Context) (filename string, payload []byte, ok bool) {
	maxBytes := controller.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondBadRequest(c, "missing file upload")
			return "", nil, false
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondInternalError(c, err, "open upload")
			return "", nil, false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondBadRequest(c, "failed to read upload: "+err.Error())
			return "", nil, false
		}
		return fileHeader.Filename, data, true
	}

	var req TemplateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return "", nil, false
	}
	if req.Document == "" {
		respondBadRequest(c, "document is required")
		return "", nil, false
	}
	if req.Filename == "" {
		req.Filename = "upload.xml"
	}
	return req.Filename, []byte(req.Document), true
}
