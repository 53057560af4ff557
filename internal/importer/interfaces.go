package importer

import (
	"github.com/dealdesk/dealdesk/internal/entities"
)

// TemplateStore is the destination-store surface the pipeline needs for
// workflow templates and their tasks.
type TemplateStore interface {
	// NameExists reports whether a workflow template with the exact name
	// already exists.
	NameExists(name string) (bool, error)
	// CreateTemplate inserts a template; a name conflict is reported as
	// templates.ErrNameTaken.
	CreateTemplate(tmpl *entities.WorkflowTemplate) error
	// CreateTask inserts one task under its parent template.
	CreateTask(task *entities.TemplateTask) error
}

// EmailStore is the destination-store surface for email template dedup.
type EmailStore interface {
	// FindByName retrieves an email template by exact name, or
	// gorm.ErrRecordNotFound.
	FindByName(name string) (*entities.EmailTemplate, error)
	// CreateWithLink inserts a template with its provenance link; on a name
	// conflict it returns the existing row instead.
	CreateWithLink(tmpl *entities.EmailTemplate, link *entities.ImportedEmailTemplateLink) (*entities.EmailTemplate, error)
}

// ImportStore manages the audit record for one run.
type ImportStore interface {
	Create(filename string, importedByID uint) (*entities.ImportRecord, error)
	Complete(record *entities.ImportRecord) error
	Fail(record *entities.ImportRecord, errMsg string) error
}

// PayloadArchiver saves a snapshot of the raw import payload for forensics.
type PayloadArchiver interface {
	SavePayload(filename string, payload []byte) (string, error)
}
