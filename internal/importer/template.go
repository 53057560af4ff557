package importer

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dealdesk/dealdesk/internal/database/templates"
	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/tpexport"
)

// importTemplate maps one source template into the destination store and
// walks its task entries. A failure creating the template itself skips this
// template only; sibling templates keep processing.
func (p *Pipeline) importTemplate(def tpexport.TemplateDefinition, record *entities.ImportRecord) (templateCreated bool) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		log.Printf("Template import: skipping template with empty name (folder %q)", def.FolderHint)
		return false
	}

	exists, err := p.templates.NameExists(name)
	if err != nil {
		log.Printf("Template import: lookup failed for template %q: %v", name, err)
		return false
	}
	if exists {
		log.Printf("Template import: template %q already exists, skipping", name)
		return false
	}

	tmpl := &entities.WorkflowTemplate{
		Name:        name,
		Category:    InferCategory(def.Name, def.FolderHint, def.TypeHint),
		Description: templateDescription(def),
		Active:      true,
		OwnerID:     record.ImportedByID,
	}

	if err := p.templates.CreateTemplate(tmpl); err != nil {
		if errors.Is(err, templates.ErrNameTaken) {
			// A concurrent run created this name between the check and the
			// write; treat it the same as the pre-existing case.
			log.Printf("Template import: template %q created concurrently, skipping", name)
			return false
		}
		log.Printf("Template import: failed to create template %q: %v", name, err)
		return false
	}

	for _, entry := range def.Tasks {
		taskCreated, emailCreated := p.importTask(entry, tmpl, def.FolderHint, record)
		if taskCreated {
			record.TasksImported++
		}
		if emailCreated {
			record.EmailsImported++
		}
	}

	return true
}

func templateDescription(def tpexport.TemplateDefinition) string {
	if strings.TrimSpace(def.Description) != "" {
		return def.Description
	}
	return fmt.Sprintf("Imported from %s", def.FolderHint)
}
