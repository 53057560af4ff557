package tpexport

import (
	"encoding/xml"
	"strings"
)

// Document is the parsed form of one legacy task-template export. It lives
// only for the duration of a single import run.
type Document struct {
	XMLName   xml.Name             `xml:"taskTemplates"`
	Templates []TemplateDefinition `xml:"template"`
}

// TemplateDefinition is one named unit of source task entries.
type TemplateDefinition struct {
	Name        string                `xml:"name"`
	FolderHint  string                `xml:"folder"`
	Description string                `xml:"description"`
	TypeHint    string                `xml:"type"` // e.g. "BUYER", "SELLER", "XACTION"
	Tasks       []TaskEntryDefinition `xml:"tasks>task"`
}

// TaskEntryDefinition is one task specification nested under a template.
type TaskEntryDefinition struct {
	Subject       string        `xml:"subject"`
	Note          string        `xml:"note"`
	DueDateAdjust DueDateAdjust `xml:"dueDateAdjust"`
	TaskTypeCode  string        `xml:"taskType"`
	AutoFillRole  string        `xml:"autoFillRole"`

	AgentVisible       ynBool `xml:"agentVisible"`
	BuyerSellerVisible ynBool `xml:"buyerSellerVisible"`
	IsOnCalendar       ynBool `xml:"onCalendar"`
	IsMilestone        ynBool `xml:"milestone"`

	ReminderSet         ynBool `xml:"reminderSet"`
	ReminderDelta       int    `xml:"reminderDelta"`
	ReminderTimeMinutes *int   `xml:"reminderTime"` // minutes since midnight; nil means the 09:00 default

	SideBuyer  ynBool `xml:"sideBuyer"`
	SideSeller ynBool `xml:"sideSeller"`
	SideDual   ynBool `xml:"sideDual"`

	SortOrder int `xml:"sortOrder"`

	Letter *LetterDefinition `xml:"letter"`
}

// DueDateAdjust is the source representation of a due-date offset.
type DueDateAdjust struct {
	Active ynBool `xml:"active,attr"`
	Delta  int    `xml:"days,attr"`
	Anchor string `xml:"from,attr"`
}

// LetterDefinition is an email specification embedded in a task entry.
type LetterDefinition struct {
	SourceID string `xml:"id,attr"`
	Name     string `xml:"name"`
	EmailTo  string `xml:"to"`
	EmailCc  string `xml:"cc"`
	EmailBcc string `xml:"bcc"`
	Subject  string `xml:"subject"`
	HTMLBody string `xml:"body"`
}

// ynBool decodes the export's "Y"/"N" booleans; "true"/"1" variants are
// accepted because newer exporter builds emit them.
type ynBool bool

func (b *ynBool) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	*b = parseYN(raw)
	return nil
}

func (b *ynBool) UnmarshalXMLAttr(attr xml.Attr) error {
	*b = parseYN(attr.Value)
	return nil
}

func parseYN(raw string) ynBool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
