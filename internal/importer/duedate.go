package importer

import (
	"strings"

	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/tpexport"
)

// anchorTable maps legacy anchor vocabulary onto canonical anchors. Keys are
// matched as substrings of the lowercased source code, in order, so codes
// like "CLOSING_DATE" or "est_settlement" resolve without an exhaustive list
// of exporter spellings.
var anchorTable = []struct {
	keyword string
	anchor  entities.DueDateAnchor
}{
	{"start", entities.AnchorRatifiedDate},
	{"contract", entities.AnchorRatifiedDate},
	{"ratified", entities.AnchorRatifiedDate},
	{"closing", entities.AnchorClosingDate},
	{"settlement", entities.AnchorClosingDate},
	{"inspection", entities.AnchorInspectionDate},
	{"appraisal", entities.AnchorAppraisalDate},
	{"financing", entities.AnchorFinancingDate},
}

// MapDueDateRule translates a source due-date adjustment into the canonical
// rule. An inactive adjustment maps to no due date regardless of its delta.
// Unrecognized anchors default to the ratified date; the second return value
// reports that fallback so the caller can log it.
func MapDueDateRule(entry tpexport.TaskEntryDefinition) (entities.DueDateRule, bool) {
	if !bool(entry.DueDateAdjust.Active) {
		return entities.DueDateRule{}, false
	}

	code := strings.ToLower(strings.TrimSpace(entry.DueDateAdjust.Anchor))
	for _, row := range anchorTable {
		if strings.Contains(code, row.keyword) {
			return entities.DueDateRule{
				Active: true,
				Anchor: row.anchor,
				Days:   entry.DueDateAdjust.Delta,
			}, false
		}
	}

	return entities.DueDateRule{
		Active: true,
		Anchor: entities.AnchorRatifiedDate,
		Days:   entry.DueDateAdjust.Delta,
	}, true
}
