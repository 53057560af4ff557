// Package templates provides database operations for workflow templates and
// their tasks.
package templates

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/entities"
)

// ErrNameTaken is returned when a template with the same name already exists.
// The name carries a unique index, so a concurrent run losing the
// check-then-create race lands here too.
var ErrNameTaken = errors.New("workflow template name already exists")

// Repository handles workflow template database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new templates repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByName retrieves a template by its exact name. Returns
// gorm.ErrRecordNotFound when no such template exists.
func (r *Repository) FindByName(name string) (*entities.WorkflowTemplate, error) {
	var tmpl entities.WorkflowTemplate
	err := r.db.Where("name = ?", name).First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// NameExists reports whether a template with the exact name exists.
func (r *Repository) NameExists(name string) (bool, error) {
	_, err := r.FindByName(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// CreateTemplate inserts a new workflow template. A unique-index conflict on
// the name is reported as ErrNameTaken.
func (r *Repository) CreateTemplate(tmpl *entities.WorkflowTemplate) error {
	err := r.db.Create(tmpl).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameTaken
	}
	return err
}

// CreateTask inserts one task under its parent template.
func (r *Repository) CreateTask(task *entities.TemplateTask) error {
	return r.db.Create(task).Error
}

// GetTemplate retrieves a template with its tasks ordered by sort order.
func (r *Repository) GetTemplate(id uint) (*entities.WorkflowTemplate, error) {
	var tmpl entities.WorkflowTemplate
	err := r.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&tmpl, id).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ListTemplates retrieves all templates without their tasks.
func (r *Repository) ListTemplates() ([]entities.WorkflowTemplate, error) {
	var tmpls []entities.WorkflowTemplate
	err := r.db.Order("name ASC").Find(&tmpls).Error
	return tmpls, err
}

// CountTasks returns the number of tasks under a template.
func (r *Repository) CountTasks(templateID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.TemplateTask{}).Where("template_id = ?", templateID).Count(&count).Error
	return count, err
}
