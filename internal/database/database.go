package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dealdesk/dealdesk/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the destination store and migrates the schema. The unique
// indexes on workflow_templates.name and email_templates.name are what makes
// check-then-create dedup safe under concurrent import runs: the losing write
// surfaces as a duplicate-key error that repositories turn into a reusable
// "already exists" branch.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.WorkflowTemplate{},
		&entities.TemplateTask{},
		&entities.EmailTemplate{},
		&entities.ImportedEmailTemplateLink{},
		&entities.ImportRecord{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
