package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealdesk/dealdesk/internal/entities"
)

func TestMapTaskType(t *testing.T) {
	assert.Equal(t, entities.TaskTypeCall, MapTaskType("CALL"))
	assert.Equal(t, entities.TaskTypeEmail, MapTaskType("EMAIL"))
	assert.Equal(t, entities.TaskTypeClosing, MapTaskType("CLOSING"))
	assert.Equal(t, entities.TaskTypeMilestone, MapTaskType("MILESTONE"))
}

func TestMapTaskTypeNormalizesInput(t *testing.T) {
	assert.Equal(t, entities.TaskTypeCall, MapTaskType("call"))
	assert.Equal(t, entities.TaskTypeAppointment, MapTaskType("  Appointment "))
}

func TestMapTaskTypeUnknownDefaultsToTodo(t *testing.T) {
	assert.Equal(t, entities.TaskTypeTodo, MapTaskType("FAX"))
	assert.Equal(t, entities.TaskTypeTodo, MapTaskType(""))
}
