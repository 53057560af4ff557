package importer

import (
	"strings"

	"github.com/dealdesk/dealdesk/internal/entities"
)

var taskTypeTable = map[string]entities.TaskType{
	"TODO":        entities.TaskTypeTodo,
	"CALL":        entities.TaskTypeCall,
	"EMAIL":       entities.TaskTypeEmail,
	"APPOINTMENT": entities.TaskTypeAppointment,
	"DOCUMENT":    entities.TaskTypeDocument,
	"REMINDER":    entities.TaskTypeReminder,
	"MILESTONE":   entities.TaskTypeMilestone,
	"FOLLOWUP":    entities.TaskTypeFollowup,
	"INSPECTION":  entities.TaskTypeInspection,
	"APPRAISAL":   entities.TaskTypeAppraisal,
	"FINANCING":   entities.TaskTypeFinancing,
	"CLOSING":     entities.TaskTypeClosing,
}

// MapTaskType translates a free-text source task type code into the canonical
// set. Codes outside the table map to TODO; that is not an error.
func MapTaskType(code string) entities.TaskType {
	if t, ok := taskTypeTable[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return t
	}
	return entities.TaskTypeTodo
}
