package entities

import "time"

type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// ImportRecord is the audit row for one import run. It is created in
// processing status before parsing begins and finalized exactly once as
// completed or failed; counts reflect successfully written rows only.
type ImportRecord struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Filename          string       `gorm:"size:512" json:"filename"`
	ImportedByID      uint         `gorm:"index" json:"imported_by_id"`
	ImportedBy        User         `gorm:"foreignKey:ImportedByID" json:"-"`
	Status            ImportStatus `gorm:"size:20;default:'processing'" json:"status"`
	TemplatesImported int          `json:"templates_imported"`
	TasksImported     int          `json:"tasks_imported"`
	EmailsImported    int          `json:"emails_imported"`
	ErrorMsg          string       `gorm:"size:1024" json:"error_msg,omitempty"`
	StartedAt         time.Time    `json:"started_at"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty"`
}

func (ImportRecord) TableName() string {
	return "import_records"
}
