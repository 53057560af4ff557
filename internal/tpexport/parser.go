// Package tpexport parses the XML export produced by the legacy transaction
// management tool into a typed tree of template and task-entry definitions.
//
// Parsing is a pure transformation: structurally invalid documents and
// documents without a single template definition are rejected up front, and
// nothing here touches the destination store.
package tpexport

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrNoTemplates is returned for a well-formed document that contains no
// template definitions. Callers treat it the same as a malformed document.
var ErrNoTemplates = errors.New("document contains no template definitions")

// DefaultReminderTimeMinutes is 09:00, the legacy tool's reminder time for
// entries that never had one set.
const DefaultReminderTimeMinutes = 540

// Parser parses legacy task-template exports.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads one export document. The filename is used for diagnostics only.
func (p *Parser) Parse(r io.Reader, filename string) (*Document, error) {
	var doc Document

	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("parse %s: %w", filename, ErrNoTemplates)
	}

	normalize(&doc)

	return &doc, nil
}

// normalize applies source-model defaults the wire format leaves implicit.
func normalize(doc *Document) {
	for ti := range doc.Templates {
		tasks := doc.Templates[ti].Tasks
		for ei := range tasks {
			if tasks[ei].ReminderTimeMinutes == nil {
				def := DefaultReminderTimeMinutes
				tasks[ei].ReminderTimeMinutes = &def
			}
		}
	}
}

// ReminderTime returns the entry's reminder time in minutes since midnight.
func (e *TaskEntryDefinition) ReminderTime() int {
	if e.ReminderTimeMinutes == nil {
		return DefaultReminderTimeMinutes
	}
	return *e.ReminderTimeMinutes
}
