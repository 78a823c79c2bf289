package ai

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 5, 7, 0, time.UTC)
	prompt := BuildPrompt(now)

	assert.Contains(t, prompt, "appointment")
	assert.Contains(t, prompt, "dental clinic")
	assert.Contains(t, prompt, "2025-06-01 09:05:07")
}

func TestBuildPromptTimestampFormat(t *testing.T) {
	prompt := BuildPrompt(time.Now())
	assert.Regexp(t, regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`), prompt)
}

func TestBookAppointmentTool(t *testing.T) {
	tool := BookAppointmentTool()

	if assert.Len(t, tool.FunctionDeclarations, 1) {
		decl := tool.FunctionDeclarations[0]
		assert.Equal(t, BookAppointmentAction, decl.Name)
		assert.ElementsMatch(t, []string{"patient_name", "date", "time"}, decl.Parameters.Required)
		assert.NotContains(t, decl.Parameters.Properties, "mobile_no")
	}
}
