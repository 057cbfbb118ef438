package tui

import (
	"testing"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestStepMarkdown(t *testing.T) {
	v := domain.StepView{
		Enabled:      true,
		Step:         1,
		TotalSteps:   4,
		Progress:     25,
		ProgressText: "Step 1 of 4",
		Panel: domain.StepDefinition{
			Number: 1,
			Title:  "Personal Information",
			Fields: []domain.FieldDescriptor{
				{Name: "firstName", Label: "First Name", Kind: domain.FieldText, Required: true},
				{Name: "email", Label: "Email", Kind: domain.FieldEmail},
			},
		},
		Values: domain.FieldValues{"firstName": "Ana"},
		Errors: map[string]string{"email": "Please enter a valid email"},
	}

	md := StepMarkdown(v)
	assert.Contains(t, md, "## Personal Information")
	assert.Contains(t, md, "Step 1 of 4 `#####---------------`")
	assert.Contains(t, md, "- **First Name** *: Ana")
	assert.Contains(t, md, "- **Email**: _empty_")
	assert.Contains(t, md, "  - Please enter a valid email")
	assert.NotContains(t, md, "| Field | Value |")
}

func TestStepMarkdown_Summary(t *testing.T) {
	v := domain.StepView{
		ProgressText: "Step 4 of 4",
		Progress:     100,
		Panel:        domain.StepDefinition{Title: "Review & Submit"},
		Summary: []domain.SummaryRow{
			{Name: "firstName", Label: "Name", Value: "Ana"},
			{Name: "income", Label: "Annual Income", Value: "a|b"},
		},
	}

	md := StepMarkdown(v)
	assert.Contains(t, md, "`####################`")
	assert.Contains(t, md, "| Name | Ana |")
	assert.Contains(t, md, "| Annual Income | a\\|b |")
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Equal(t, "----", progressBar(-10, 4))
	assert.Equal(t, "####", progressBar(250, 4))
	assert.Equal(t, "##--", progressBar(50, 4))
}

func TestNotice(t *testing.T) {
	ok := Notice(domain.Banner{Kind: domain.BannerSuccess, Message: "Sent"})
	fail := Notice(domain.Banner{Kind: domain.BannerError, Message: "Failed"})
	assert.Contains(t, ok, "Sent")
	assert.Contains(t, fail, "Failed")
	assert.Contains(t, FieldError("Required"), "Required")
}
