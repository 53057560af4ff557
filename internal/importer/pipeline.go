// Package importer implements the template import pipeline: parse the legacy
// export, map each template and task entry into the destination model,
// deduplicate embedded letters, and keep a per-run import record whose counts
// reflect successful writes only.
//
// Failure handling is two-tiered. Parse failures, empty documents, and
// anything outside the per-item scopes finalize the run as failed. A single
// template, task, or letter failing is caught at the smallest enclosing
// scope, logged with the offending name, and excluded from the counts while
// the run continues.
package importer

import (
	"bytes"
	"fmt"
	"log"

	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/tpexport"
)

// Result summarizes one import run.
type Result struct {
	ImportID          uint
	TemplatesImported int
	TasksImported     int
	EmailsImported    int
}

// Pipeline runs template imports against the destination store.
type Pipeline struct {
	parser         *tpexport.Parser
	templates      TemplateStore
	emailExtractor *EmailExtractor
	imports        ImportStore
	archiver       PayloadArchiver
}

// NewPipeline creates an import pipeline. The archiver may be nil; payload
// snapshots are then skipped.
func NewPipeline(tmplStore TemplateStore, emailStore EmailStore, importStore ImportStore, archiver PayloadArchiver) *Pipeline {
	return &Pipeline{
		parser:         tpexport.NewParser(),
		templates:      tmplStore,
		emailExtractor: NewEmailExtractor(emailStore),
		imports:        importStore,
		archiver:       archiver,
	}
}

// Run executes one import: one document, one import record, one sequential
// pass in document order. The import record is finalized exactly once, as
// completed or failed, before Run returns.
func (p *Pipeline) Run(filename string, payload []byte, importedByID uint) (res Result, err error) {
	record, err := p.imports.Create(filename, importedByID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create import record: %w", err)
	}

	// Anything escaping the per-item isolation scopes must still finalize
	// the record as failed rather than leaving it processing forever.
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("internal error: %v", r)
			p.fail(record, msg)
			res = resultOf(record)
			err = fmt.Errorf("template import: %s", msg)
		}
	}()

	if p.archiver != nil {
		if _, archiveErr := p.archiver.SavePayload(filename, payload); archiveErr != nil {
			log.Printf("Template import: failed to archive payload for %s: %v", filename, archiveErr)
		}
	}

	doc, parseErr := p.parser.Parse(bytes.NewReader(payload), filename)
	if parseErr != nil {
		p.fail(record, parseErr.Error())
		return resultOf(record), parseErr
	}

	for _, def := range doc.Templates {
		if p.importTemplate(def, record) {
			record.TemplatesImported++
		}
	}

	if completeErr := p.imports.Complete(record); completeErr != nil {
		log.Printf("Template import: failed to finalize import record %d: %v", record.ID, completeErr)
		return resultOf(record), fmt.Errorf("failed to finalize import record: %w", completeErr)
	}

	log.Printf("Template import: run %d completed with %d templates, %d tasks, %d emails from %s",
		record.ID, record.TemplatesImported, record.TasksImported, record.EmailsImported, filename)

	return resultOf(record), nil
}

func (p *Pipeline) fail(record *entities.ImportRecord, msg string) {
	if failErr := p.imports.Fail(record, msg); failErr != nil {
		log.Printf("Template import: failed to mark import record %d as failed: %v", record.ID, failErr)
	}
}

func resultOf(record *entities.ImportRecord) Result {
	return Result{
		ImportID:          record.ID,
		TemplatesImported: record.TemplatesImported,
		TasksImported:     record.TasksImported,
		EmailsImported:    record.EmailsImported,
	}
}
