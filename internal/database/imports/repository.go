// Package imports provides database operations for import run records.
package imports

import (
	"time"

	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/entities"
)

// Repository handles import record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new import records repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new import record in processing status.
func (r *Repository) Create(filename string, importedByID uint) (*entities.ImportRecord, error) {
	record := &entities.ImportRecord{
		Filename:     filename,
		ImportedByID: importedByID,
		Status:       entities.ImportStatusProcessing,
		StartedAt:    time.Now(),
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Complete finalizes a record as completed with its final counts.
func (r *Repository) Complete(record *entities.ImportRecord) error {
	now := time.Now()
	record.Status = entities.ImportStatusCompleted
	record.CompletedAt = &now
	return r.db.Save(record).Error
}

// Fail finalizes a record as failed, keeping whatever partial counts had
// accumulated before the failure.
func (r *Repository) Fail(record *entities.ImportRecord, errMsg string) error {
	now := time.Now()
	record.Status = entities.ImportStatusFailed
	record.ErrorMsg = truncate(errMsg, 1024)
	record.CompletedAt = &now
	return r.db.Save(record).Error
}

// Get retrieves a single import record by ID.
func (r *Repository) Get(id uint) (*entities.ImportRecord, error) {
	var record entities.ImportRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves paginated import records, most recent first.
func (r *Repository) List(limit, offset int) ([]entities.ImportRecord, int64, error) {
	var records []entities.ImportRecord
	var total int64

	if err := r.db.Model(&entities.ImportRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("started_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

// ListStale retrieves records still in processing status that started before
// the cutoff. These are abandoned runs; nothing transitions them
// automatically.
func (r *Repository) ListStale(cutoff time.Time) ([]entities.ImportRecord, error) {
	var records []entities.ImportRecord
	err := r.db.
		Where("status = ? AND started_at < ?", entities.ImportStatusProcessing, cutoff).
		Order("started_at ASC").
		Find(&records).Error
	return records, err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
