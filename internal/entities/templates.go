package entities

import (
	"time"

	"gorm.io/gorm"
)

type TemplateCategory string

const (
	CategoryListing TemplateCategory = "listing"
	CategoryBuyer   TemplateCategory = "buyer"
	CategoryGeneral TemplateCategory = "general"
)

type TaskType string

const (
	TaskTypeTodo        TaskType = "TODO"
	TaskTypeCall        TaskType = "CALL"
	TaskTypeEmail       TaskType = "EMAIL"
	TaskTypeAppointment TaskType = "APPOINTMENT"
	TaskTypeDocument    TaskType = "DOCUMENT"
	TaskTypeReminder    TaskType = "REMINDER"
	TaskTypeMilestone   TaskType = "MILESTONE"
	TaskTypeFollowup    TaskType = "FOLLOWUP"
	TaskTypeInspection  TaskType = "INSPECTION"
	TaskTypeAppraisal   TaskType = "APPRAISAL"
	TaskTypeFinancing   TaskType = "FINANCING"
	TaskTypeClosing     TaskType = "CLOSING"
)

type DueDateAnchor string

const (
	AnchorRatifiedDate   DueDateAnchor = "ratified_date"
	AnchorClosingDate    DueDateAnchor = "closing_date"
	AnchorInspectionDate DueDateAnchor = "inspection_date"
	AnchorAppraisalDate  DueDateAnchor = "appraisal_date"
	AnchorFinancingDate  DueDateAnchor = "financing_date"
)

// DueDateRule is the canonical anchor-relative due date. The zero value means
// the task has no due date; Active distinguishes "no rule" from "due on the
// anchor day itself" (Days == 0).
type DueDateRule struct {
	Active bool          `gorm:"column:due_date_active" json:"active"`
	Anchor DueDateAnchor `gorm:"column:due_date_anchor;size:30" json:"anchor,omitempty"`
	Days   int           `gorm:"column:due_date_days" json:"days,omitempty"`
}

type WorkflowTemplate struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"uniqueIndex;size:256" json:"name"`
	Category    TemplateCategory `gorm:"size:20;default:'general'" json:"category"`
	Description string           `gorm:"size:1024" json:"description,omitempty"`
	Active      bool             `gorm:"default:true" json:"active"`
	OwnerID     uint             `gorm:"index" json:"owner_id"`
	Owner       User             `gorm:"foreignKey:OwnerID" json:"-"`
	Tasks       []TemplateTask   `gorm:"foreignKey:TemplateID" json:"tasks,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

type TemplateTask struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	TemplateID uint        `gorm:"index" json:"template_id"`
	Subject    string      `gorm:"size:512" json:"subject"`
	Notes      string      `gorm:"type:text" json:"notes,omitempty"`
	DueDate    DueDateRule `gorm:"embedded" json:"due_date"`
	SortOrder  int         `json:"sort_order"`
	Type       TaskType    `gorm:"size:20;default:'TODO'" json:"type"`

	// Optional link to a deduplicated email template.
	EmailTemplateID *uint `gorm:"index" json:"email_template_id,omitempty"`

	AutoFillRole string `gorm:"size:100" json:"auto_fill_role,omitempty"`

	// Visibility and scheduling flags copied verbatim from the source entry.
	AgentVisible        bool `json:"agent_visible"`
	ClientVisible       bool `json:"client_visible"`
	OnCalendar          bool `json:"on_calendar"`
	IsMilestone         bool `json:"is_milestone"`
	ReminderSet         bool `json:"reminder_set"`
	ReminderOffsetDays  int  `json:"reminder_offset_days,omitempty"`
	ReminderTimeMinutes int  `gorm:"default:540" json:"reminder_time_minutes"`

	// Transaction-side applicability.
	SideBuyer  bool `json:"side_buyer"`
	SideSeller bool `json:"side_seller"`
	SideDual   bool `json:"side_dual"`

	Template  WorkflowTemplate `gorm:"foreignKey:TemplateID" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type EmailTemplate struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"uniqueIndex;size:256" json:"name"`
	Subject   string           `gorm:"size:512" json:"subject,omitempty"`
	Body      string           `gorm:"type:text" json:"body,omitempty"`
	Category  TemplateCategory `gorm:"size:20;default:'general'" json:"category"`
	OwnerID   uint             `gorm:"index" json:"owner_id"`
	Owner     User             `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ImportedEmailTemplateLink records where an imported email template came
// from: the legacy letter id, its folder, the recipients the letter declared,
// and the import run that created it.
type ImportedEmailTemplateLink struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	EmailTemplateID  uint          `gorm:"index" json:"email_template_id"`
	EmailTemplate    EmailTemplate `gorm:"foreignKey:EmailTemplateID" json:"-"`
	SourceLetterID   string        `gorm:"size:100" json:"source_letter_id,omitempty"`
	FolderHint       string        `gorm:"size:256" json:"folder_hint,omitempty"`
	RecipientsTo     string        `gorm:"size:512" json:"recipients_to,omitempty"`
	RecipientsCc     string        `gorm:"size:512" json:"recipients_cc,omitempty"`
	RecipientsBcc    string        `gorm:"size:512" json:"recipients_bcc,omitempty"`
	ImportRecordID   uint          `gorm:"index" json:"import_record_id"`
	ImportRecord     ImportRecord  `gorm:"foreignKey:ImportRecordID" json:"-"`
	IsSystemTemplate bool          `json:"is_system_template"`
	CreatedAt        time.Time     `json:"created_at"`
}

func (WorkflowTemplate) TableName() string {
	return "workflow_templates"
}

func (TemplateTask) TableName() string {
	return "template_tasks"
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}

func (ImportedEmailTemplateLink) TableName() string {
	return "imported_email_template_links"
}
