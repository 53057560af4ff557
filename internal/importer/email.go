package importer

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/tpexport"
)

// systemTemplatePrefixes marks imported letters that belong to the platform
// rather than an individual coordinator.
var systemTemplatePrefixes = []string{"system", "default", "standard", "template", "auto"}

// htmlEntityPairs is the fixed entity set the legacy export encodes bodies
// with. &amp; decodes last so double-encoded markup survives one level.
var htmlEntityPairs = [][2]string{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&amp;", "&"},
}

// EmailExtractor turns embedded letters into deduplicated email templates.
type EmailExtractor struct {
	emails EmailStore
}

// NewEmailExtractor creates an extractor backed by the given store.
func NewEmailExtractor(emails EmailStore) *EmailExtractor {
	return &EmailExtractor{emails: emails}
}

// Extract resolves a letter to an email template id. A letter without a name
// is skipped silently (nil id, no error). An existing template with the same
// name is reused without a write; otherwise a new template plus its
// provenance link are created. The created flag reports whether this call
// wrote a new template.
func (x *EmailExtractor) Extract(
	letter *tpexport.LetterDefinition,
	taskSubject string,
	folderHint string,
	category entities.TemplateCategory,
	record *entities.ImportRecord,
) (id *uint, created bool, err error) {
	if letter == nil || strings.TrimSpace(letter.Name) == "" {
		return nil, false, nil
	}

	name := strings.TrimSpace(letter.Name)

	existing, err := x.emails.FindByName(name)
	if err == nil {
		return &existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup email template %q: %w", name, err)
	}

	subject := letter.Subject
	if strings.TrimSpace(subject) == "" {
		subject = taskSubject
	}

	tmpl := &entities.EmailTemplate{
		Name:     name,
		Subject:  subject,
		Body:     NormalizeHTMLBody(letter.HTMLBody),
		Category: category,
		OwnerID:  record.ImportedByID,
	}
	link := &entities.ImportedEmailTemplateLink{
		SourceLetterID:   letter.SourceID,
		FolderHint:       folderHint,
		RecipientsTo:     letter.EmailTo,
		RecipientsCc:     letter.EmailCc,
		RecipientsBcc:    letter.EmailBcc,
		ImportRecordID:   record.ID,
		IsSystemTemplate: IsSystemTemplateName(name),
	}

	saved, err := x.emails.CreateWithLink(tmpl, link)
	if err != nil {
		return nil, false, fmt.Errorf("create email template %q: %w", name, err)
	}

	// A concurrent run may have won the name; in that case the store handed
	// back the winner's row and nothing new was written here.
	return &saved.ID, saved == tmpl, nil
}

// NormalizeHTMLBody decodes the export's entity encoding, unifies line
// endings, and wraps fragment bodies in a minimal document shell so every
// stored body renders standalone.
func NormalizeHTMLBody(body string) string {
	for _, pair := range htmlEntityPairs {
		body = strings.ReplaceAll(body, pair[0], pair[1])
	}

	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	lower := strings.ToLower(body)
	if !strings.Contains(lower, "<html") && !strings.Contains(lower, "<body") {
		body = "<html><head><meta charset=\"utf-8\"></head><body>\n" + body + "\n</body></html>"
	}

	return body
}

// IsSystemTemplateName reports whether a template name marks a
// platform-owned template rather than a user-authored one.
func IsSystemTemplateName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range systemTemplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
