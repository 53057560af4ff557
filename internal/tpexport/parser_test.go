package tpexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<taskTemplates>
  <template>
    <name>Buyer Side - Conventional</name>
    <folder>Templates/Buyer</folder>
    <description>Standard buyer side checklist</description>
    <type>BUYER</type>
    <tasks>
      <task>
        <subject>Order home inspection</subject>
        <note>Use the preferred inspector list</note>
        <dueDateAdjust active="Y" days="7" from="CONTRACT_DATE"/>
        <taskType>APPOINTMENT</taskType>
        <agentVisible>Y</agentVisible>
        <buyerSellerVisible>N</buyerSellerVisible>
        <onCalendar>Y</onCalendar>
        <milestone>N</milestone>
        <reminderSet>Y</reminderSet>
        <reminderDelta>-1</reminderDelta>
        <reminderTime>600</reminderTime>
        <sideBuyer>Y</sideBuyer>
        <sortOrder>1</sortOrder>
      </task>
      <task>
        <subject>Send intro email</subject>
        <dueDateAdjust active="N" days="0" from=""/>
        <taskType>EMAIL</taskType>
        <sortOrder>2</sortOrder>
        <letter id="L-101">
          <name>Buyer Welcome</name>
          <to>buyer</to>
          <cc>agent</cc>
          <subject>Welcome aboard</subject>
          <body>&lt;p&gt;Hello &amp;amp; welcome!&lt;/p&gt;</body>
        </letter>
      </task>
    </tasks>
  </template>
</taskTemplates>`

func TestParse(t *testing.T) {
	p := NewParser()

	doc, err := p.Parse(strings.NewReader(sampleExport), "export.xml")
	require.NoError(t, err)
	require.Len(t, doc.Templates, 1)

	tmpl := doc.Templates[0]
	assert.Equal(t, "Buyer Side - Conventional", tmpl.Name)
	assert.Equal(t, "Templates/Buyer", tmpl.FolderHint)
	assert.Equal(t, "BUYER", tmpl.TypeHint)
	require.Len(t, tmpl.Tasks, 2)

	first := tmpl.Tasks[0]
	assert.Equal(t, "Order home inspection", first.Subject)
	assert.True(t, bool(first.DueDateAdjust.Active))
	assert.Equal(t, 7, first.DueDateAdjust.Delta)
	assert.Equal(t, "CONTRACT_DATE", first.DueDateAdjust.Anchor)
	assert.Equal(t, "APPOINTMENT", first.TaskTypeCode)
	assert.True(t, bool(first.AgentVisible))
	assert.False(t, bool(first.BuyerSellerVisible))
	assert.True(t, bool(first.ReminderSet))
	assert.Equal(t, -1, first.ReminderDelta)
	assert.Equal(t, 600, first.ReminderTime())
	assert.Nil(t, first.Letter)

	second := tmpl.Tasks[1]
	assert.False(t, bool(second.DueDateAdjust.Active))
	require.NotNil(t, second.Letter)
	assert.Equal(t, "L-101", second.Letter.SourceID)
	assert.Equal(t, "Buyer Welcome", second.Letter.Name)
	assert.Equal(t, "buyer", second.Letter.EmailTo)
	// The body stays entity-encoded at parse time; decoding happens when the
	// email template is materialized.
	assert.Equal(t, "<p>Hello &amp; welcome!</p>", second.Letter.HTMLBody)
}

func TestParseReminderTimeDefault(t *testing.T) {
	input := `<taskTemplates>
  <template>
    <name>Minimal</name>
    <tasks>
      <task>
        <subject>Do the thing</subject>
        <sortOrder>1</sortOrder>
      </task>
    </tasks>
  </template>
</taskTemplates>`

	doc, err := NewParser().Parse(strings.NewReader(input), "minimal.xml")
	require.NoError(t, err)

	entry := doc.Templates[0].Tasks[0]
	require.NotNil(t, entry.ReminderTimeMinutes)
	assert.Equal(t, DefaultReminderTimeMinutes, *entry.ReminderTimeMinutes)
	assert.Equal(t, DefaultReminderTimeMinutes, entry.ReminderTime())
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	input := `<taskTemplates></taskTemplates>`

	doc, err := NewParser().Parse(strings.NewReader(input), "empty.xml")
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTemplates)
	assert.Contains(t, err.Error(), "empty.xml")
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	input := `<taskTemplates><template><name>Broken`

	doc, err := NewParser().Parse(strings.NewReader(input), "broken.xml")
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xml")
}

func TestYNBoolVariants(t *testing.T) {
	input := `<taskTemplates>
  <template>
    <name>Variants</name>
    <tasks>
      <task>
        <subject>a</subject>
        <agentVisible>yes</agentVisible>
        <onCalendar>true</onCalendar>
        <milestone>1</milestone>
        <reminderSet>n</reminderSet>
        <sideBuyer>garbage</sideBuyer>
      </task>
    </tasks>
  </template>
</taskTemplates>`

	doc, err := NewParser().Parse(strings.NewReader(input), "variants.xml")
	require.NoError(t, err)

	entry := doc.Templates[0].Tasks[0]
	assert.True(t, bool(entry.AgentVisible))
	assert.True(t, bool(entry.IsOnCalendar))
	assert.True(t, bool(entry.IsMilestone))
	assert.False(t, bool(entry.ReminderSet))
	assert.False(t, bool(entry.SideBuyer))
}
