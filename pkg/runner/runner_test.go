package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/pkg/adapters/simulated"
	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/dsl"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/nkinsurance/quoteflow/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answers for every step of the default catalog, each step closed by an
// empty command line.
var fullQuote = strings.Join([]string{
	"Ana", "Silva", "ana@example.com", "5551234567", "",
	"33101", "3", "3", "",
	"3", "",
	"",
}, "\n") + "\n"

func newPage(t *testing.T, s ports.Submitter) *quoteflow.Page {
	t.Helper()
	eng, err := quoteflow.New(
		quoteflow.WithSubmitter(s),
		quoteflow.WithNoticeTTL(0),
	)
	require.NoError(t, err)
	page := eng.NewPage(context.Background())
	t.Cleanup(page.Close)
	return page
}

func run(t *testing.T, page *quoteflow.Page, input string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	r := runner.NewRunner(
		runner.WithInput(strings.NewReader(input)),
		runner.WithOutput(out),
	)
	err := r.Run(context.Background(), page)
	return out.String(), err
}

func TestRunner_SubmitsQuote(t *testing.T) {
	var got domain.Lead
	page := newPage(t, ports.SubmitterFunc(func(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
		got = lead
		return domain.Receipt{ID: "r-1", AcceptedAt: time.Now()}, nil
	}))

	out, err := run(t, page, fullQuote)
	require.NoError(t, err)

	assert.Contains(t, out, "Step 1 of 4")
	assert.Contains(t, out, "Step 4 of 4")
	assert.Contains(t, out, "| Name | Ana |")
	assert.Contains(t, out, "| Coverage For | My family |")
	assert.Contains(t, out, "Sending...")
	assert.Contains(t, out, "Thank you for your request!")

	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "(555) 123-4567", got.Phone)
	assert.Equal(t, "3", got.HouseholdSize)
	assert.Equal(t, "$50,000 - $75,000", got.Income)
	assert.Equal(t, "My family", got.CoverageNeeded)

	assert.Equal(t, 1, page.Wizard.State().CurrentStep)
	assert.Empty(t, page.Wizard.Values())
}

func TestRunner_BlockedStepAsksAgain(t *testing.T) {
	page := newPage(t, simulated.New(simulated.WithDelay(0)))

	input := strings.Repeat("\n", 5) + strings.Repeat("\n", 4) + "quit\n"
	out, err := run(t, page, input)
	require.NoError(t, err)

	assert.Contains(t, out, "First Name: This field is required")
	assert.Contains(t, out, "Phone: This field is required")
	assert.Equal(t, 2, strings.Count(out, "Step 1 of 4"))
	assert.Contains(t, out, "Bye!")
	assert.Equal(t, 1, page.Wizard.State().CurrentStep)
}

func TestRunner_InlineFieldError(t *testing.T) {
	page := newPage(t, simulated.New(simulated.WithDelay(0)))

	input := "Ana\nSilva\nnot-an-email\n5551234567\nquit\n"
	out, err := run(t, page, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Please enter a valid email")
	assert.Equal(t, "not-an-email", page.Wizard.Values().Get("email"))
}

func TestRunner_Back(t *testing.T) {
	page := newPage(t, simulated.New(simulated.WithDelay(0)))

	input := "Ana\nSilva\nana@example.com\n5551234567\n\n" +
		"\n\n\nback\n" +
		"\n\n\n\nquit\n"
	out, err := run(t, page, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Step 2 of 4")
	assert.Contains(t, out, "First Name [Ana]: ")
	assert.Equal(t, 1, page.Wizard.State().CurrentStep)
}

func TestRunner_FailedSubmissionKeepsValues(t *testing.T) {
	page := newPage(t, simulated.New(
		simulated.WithDelay(0),
		simulated.WithFailure(errors.New("crm down")),
	))

	out, err := run(t, page, fullQuote+"quit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "We could not send your request right now.")
	assert.Equal(t, 4, page.Wizard.State().CurrentStep)
	assert.Equal(t, "Ana", page.Wizard.Values().Get("firstName"))
}

func TestRunner_EndOfInput(t *testing.T) {
	page := newPage(t, simulated.New(simulated.WithDelay(0)))

	_, err := run(t, page, "Ana\n")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", page.Wizard.Values().Get("firstName"))
}

func TestRunner_CanceledContext(t *testing.T) {
	page := newPage(t, simulated.New(simulated.WithDelay(0)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()
	r := runner.NewRunner(runner.WithInput(pr), runner.WithOutput(io.Discard))
	err := r.Run(ctx, page)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_DisabledWizard(t *testing.T) {
	eng, err := quoteflow.New(quoteflow.WithCatalog(&catalog.Catalog{
		Contact:    catalog.Default().Contact,
		Newsletter: catalog.Default().Newsletter,
	}))
	require.NoError(t, err)
	page := eng.NewPage(context.Background())
	t.Cleanup(page.Close)

	out, err := run(t, page, "")
	require.NoError(t, err)
	assert.Contains(t, out, "not available")
}

func TestRunner_CustomWizard(t *testing.T) {
	cat, err := dsl.New().
		SubmitLabel("Send", "Sending").
		Messages("Got it", "Nope").
		Step("Contact").
		Email("email", "Email").Required().
		Step("Done").
		Build()
	require.NoError(t, err)

	eng, err := quoteflow.New(
		quoteflow.WithCatalog(cat),
		quoteflow.WithSubmitter(simulated.New(simulated.WithDelay(0))),
		quoteflow.WithNoticeTTL(0),
	)
	require.NoError(t, err)
	page := eng.NewPage(context.Background())
	t.Cleanup(page.Close)

	out, err := run(t, page, "ana@example.com\n\n\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 2 of 2")
	assert.Contains(t, out, "[Enter] Send, back, quit > ")
	assert.Contains(t, out, "Got it")
}
