// Package emails provides database operations for email templates and their
// import provenance links.
package emails

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/entities"
)

// Repository handles email template database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new email templates repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByName retrieves an email template by its exact name. Returns
// gorm.ErrRecordNotFound when no such template exists.
func (r *Repository) FindByName(name string) (*entities.EmailTemplate, error) {
	var tmpl entities.EmailTemplate
	err := r.db.Where("name = ?", name).First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// CreateWithLink inserts an email template together with its provenance link
// in one transaction. When a concurrent run created a template with the same
// name first, the duplicate-key conflict resolves to the winner's row and no
// new link is written; the returned template is the one to reference.
func (r *Repository) CreateWithLink(tmpl *entities.EmailTemplate, link *entities.ImportedEmailTemplateLink) (*entities.EmailTemplate, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tmpl).Error; err != nil {
			return err
		}
		link.EmailTemplateID = tmpl.ID
		return tx.Create(link).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindByName(tmpl.Name)
		if findErr != nil {
			return nil, fmt.Errorf("email template %q conflicted but could not be re-read: %w", tmpl.Name, findErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// GetLinkByTemplateID retrieves the provenance link for an email template.
func (r *Repository) GetLinkByTemplateID(emailTemplateID uint) (*entities.ImportedEmailTemplateLink, error) {
	var link entities.ImportedEmailTemplateLink
	err := r.db.Where("email_template_id = ?", emailTemplateID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ListByImportRecord retrieves all provenance links created by one import run.
func (r *Repository) ListByImportRecord(importRecordID uint) ([]entities.ImportedEmailTemplateLink, error) {
	var links []entities.ImportedEmailTemplateLink
	err := r.db.Where("import_record_id = ?", importRecordID).Find(&links).Error
	return links, err
}
