package importer

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/database/templates"
	"github.com/dealdesk/dealdesk/internal/entities"
)

// fakeTemplateStore is an in-memory TemplateStore with injectable failures.
type fakeTemplateStore struct {
	templates map[string]*entities.WorkflowTemplate
	tasks     []*entities.TemplateTask
	nextID    uint

	failTaskSubjects  map[string]bool
	failTemplateNames map[string]bool
	conflictNames     map[string]bool
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{
		templates:         make(map[string]*entities.WorkflowTemplate),
		failTaskSubjects:  make(map[string]bool),
		failTemplateNames: make(map[string]bool),
		conflictNames:     make(map[string]bool),
	}
}

func (s *fakeTemplateStore) NameExists(name string) (bool, error) {
	_, ok := s.templates[name]
	return ok, nil
}

func (s *fakeTemplateStore) CreateTemplate(tmpl *entities.WorkflowTemplate) error {
	if s.failTemplateNames[tmpl.Name] {
		return fmt.Errorf("simulated write failure for %q", tmpl.Name)
	}
	if s.conflictNames[tmpl.Name] {
		return templates.ErrNameTaken
	}
	if _, ok := s.templates[tmpl.Name]; ok {
		return templates.ErrNameTaken
	}
	s.nextID++
	tmpl.ID = s.nextID
	s.templates[tmpl.Name] = tmpl
	return nil
}

func (s *fakeTemplateStore) CreateTask(task *entities.TemplateTask) error {
	if s.failTaskSubjects[task.Subject] {
		return fmt.Errorf("simulated write failure for task %q", task.Subject)
	}
	s.nextID++
	task.ID = s.nextID
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *fakeTemplateStore) tasksFor(templateID uint) []*entities.TemplateTask {
	var out []*entities.TemplateTask
	for _, task := range s.tasks {
		if task.TemplateID == templateID {
			out = append(out, task)
		}
	}
	return out
}

// fakeEmailStore is an in-memory EmailStore.
type fakeEmailStore struct {
	byName    map[string]*entities.EmailTemplate
	links     []*entities.ImportedEmailTemplateLink
	nextID    uint
	failNames map[string]bool
	// raceNames simulates a concurrent run winning the unique index between
	// FindByName and CreateWithLink.
	raceNames map[string]*entities.EmailTemplate
}

func newFakeEmailStore() *fakeEmailStore {
	return &fakeEmailStore{
		byName:    make(map[string]*entities.EmailTemplate),
		failNames: make(map[string]bool),
		raceNames: make(map[string]*entities.EmailTemplate),
	}
}

func (s *fakeEmailStore) FindByName(name string) (*entities.EmailTemplate, error) {
	if tmpl, ok := s.byName[name]; ok {
		return tmpl, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeEmailStore) CreateWithLink(tmpl *entities.EmailTemplate, link *entities.ImportedEmailTemplateLink) (*entities.EmailTemplate, error) {
	if s.failNames[tmpl.Name] {
		return nil, fmt.Errorf("simulated write failure for email %q", tmpl.Name)
	}
	if winner, ok := s.raceNames[tmpl.Name]; ok {
		return winner, nil
	}
	s.nextID++
	tmpl.ID = s.nextID
	s.byName[tmpl.Name] = tmpl
	link.EmailTemplateID = tmpl.ID
	s.links = append(s.links, link)
	return tmpl, nil
}

// fakeImportStore is an in-memory ImportStore.
type fakeImportStore struct {
	records []*entities.ImportRecord
	nextID  uint
}

func newFakeImportStore() *fakeImportStore {
	return &fakeImportStore{}
}

func (s *fakeImportStore) Create(filename string, importedByID uint) (*entities.ImportRecord, error) {
	s.nextID++
	record := &entities.ImportRecord{
		ID:           s.nextID,
		Filename:     filename,
		ImportedByID: importedByID,
		Status:       entities.ImportStatusProcessing,
		StartedAt:    time.Now(),
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *fakeImportStore) Complete(record *entities.ImportRecord) error {
	now := time.Now()
	record.Status = entities.ImportStatusCompleted
	record.CompletedAt = &now
	return nil
}

func (s *fakeImportStore) Fail(record *entities.ImportRecord, errMsg string) error {
	now := time.Now()
	record.Status = entities.ImportStatusFailed
	record.ErrorMsg = errMsg
	record.CompletedAt = &now
	return nil
}
