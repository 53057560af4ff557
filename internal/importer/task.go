package importer

import (
	"log"
	"strings"

	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/tpexport"
)

// importTask maps one task entry into a destination task row. Failures here
// are the smallest isolation scope: a bad entry is logged and skipped, and
// the remaining entries of the same template keep processing.
func (p *Pipeline) importTask(
	entry tpexport.TaskEntryDefinition,
	tmpl *entities.WorkflowTemplate,
	folderHint string,
	record *entities.ImportRecord,
) (taskCreated, emailCreated bool) {
	subject := strings.TrimSpace(entry.Subject)
	if subject == "" {
		log.Printf("Template import: skipping task with empty subject in template %q", tmpl.Name)
		return false, false
	}

	// Letter extraction is recoverable: a failed email write costs the task
	// its email link, not its existence.
	var emailTemplateID *uint
	if entry.Letter != nil {
		id, created, err := p.emailExtractor.Extract(entry.Letter, subject, folderHint, tmpl.Category, record)
		if err != nil {
			log.Printf("Template import: email extraction failed for task %q in template %q: %v", subject, tmpl.Name, err)
		} else {
			emailTemplateID = id
			emailCreated = created
		}
	}

	rule, unknownAnchor := MapDueDateRule(entry)
	if unknownAnchor {
		log.Printf("Template import: unknown due-date anchor %q for task %q in template %q, defaulting to %s",
			entry.DueDateAdjust.Anchor, subject, tmpl.Name, entities.AnchorRatifiedDate)
	}

	task := &entities.TemplateTask{
		TemplateID:      tmpl.ID,
		Subject:         subject,
		Notes:           entry.Note,
		DueDate:         rule,
		SortOrder:       entry.SortOrder,
		Type:            MapTaskType(entry.TaskTypeCode),
		EmailTemplateID: emailTemplateID,
		AutoFillRole:    entry.AutoFillRole,

		AgentVisible:        bool(entry.AgentVisible),
		ClientVisible:       bool(entry.BuyerSellerVisible),
		OnCalendar:          bool(entry.IsOnCalendar),
		IsMilestone:         bool(entry.IsMilestone),
		ReminderSet:         bool(entry.ReminderSet),
		ReminderOffsetDays:  entry.ReminderDelta,
		ReminderTimeMinutes: entry.ReminderTime(),

		SideBuyer:  bool(entry.SideBuyer),
		SideSeller: bool(entry.SideSeller),
		SideDual:   bool(entry.SideDual),
	}

	if err := p.templates.CreateTask(task); err != nil {
		log.Printf("Template import: failed to create task %q in template %q: %v", subject, tmpl.Name, err)
		return false, emailCreated
	}

	return true, emailCreated
}
