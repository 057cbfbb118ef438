package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/internal/presentation/tui"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
)

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner walks a visitor through the quote wizard of one page.
type Runner struct {
	input    io.Reader
	output   io.Writer
	renderer ContentRenderer
	logger   *slog.Logger

	lines     chan inputResult
	startOnce sync.Once
	seen      map[string]bool
}

// NewRunner creates a Runner reading stdin and writing stdout unless told
// otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		input:  os.Stdin,
		output: os.Stdout,
		logger: logging.NewNop(),
		seen:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives the wizard until the quote is submitted or the visitor quits.
// End of input counts as quitting. A canceled context aborts the prompt in
// progress and any pending submission.
func (r *Runner) Run(ctx context.Context, page *quoteflow.Page) error {
	wiz := page.Wizard
	if !wiz.Enabled() {
		fmt.Fprintln(r.output, "The quote form is not available.")
		return nil
	}
	r.logger.Debug("terminal wizard started", "page_id", page.ID)

	for {
		view := wiz.View()
		r.show(tui.StepMarkdown(view))

		if err := r.fill(ctx, wiz, view.Panel); err != nil {
			return r.exit(page, err)
		}

		cmd, err := r.ask(ctx, commandPrompt(wiz.View()))
		if err != nil {
			return r.exit(page, err)
		}

		switch strings.ToLower(cmd) {
		case "", "n", "next", "s", "submit":
			if !wiz.State().IsLast() {
				if !wiz.Next(ctx) {
					r.printErrors(wiz.View())
				}
				continue
			}
			done, err := r.submit(ctx, page)
			if err != nil {
				return r.exit(page, err)
			}
			if done {
				return nil
			}
		case "b", "back", "previous":
			wiz.Previous(ctx)
		case "q", "quit", "exit":
			fmt.Fprintln(r.output, "Bye!")
			return nil
		default:
			fmt.Fprintf(r.output, "Unknown command %q.\n", cmd)
		}
	}
}

// fill asks for every field of a step. An empty answer keeps the current value.
func (r *Runner) fill(ctx context.Context, wiz *quoteflow.Wizard, step domain.StepDefinition) error {
	for _, f := range step.Fields {
		for {
			answer, err := r.ask(ctx, fieldPrompt(f, wiz.Values().Get(f.Name)))
			if err != nil {
				return err
			}
			if answer == "" {
				break
			}
			err = wiz.SetValue(ctx, f.Name, pick(f, answer))
			if err != nil {
				fmt.Fprintln(r.output, tui.FieldError(err.Error()))
				continue
			}
			if !wiz.ValidateField(ctx, f.Name) {
				fmt.Fprintln(r.output, tui.FieldError(wiz.View().Errors[f.Name]))
			}
			break
		}
	}
	return nil
}

// submit sends the quote and waits for the outcome. It reports true once the
// quote went through.
func (r *Runner) submit(ctx context.Context, page *quoteflow.Page) (bool, error) {
	sub, err := page.Wizard.Submit(ctx)
	switch {
	case errors.Is(err, domain.ErrValidation):
		r.printErrors(page.Wizard.View())
		return false, nil
	case err != nil:
		return false, err
	}

	fmt.Fprintln(r.output, page.Wizard.View().Controls.SubmitLabel)
	res, err := sub.Wait(ctx)
	if err != nil {
		return false, err
	}
	r.printBanners(page.Notices)
	return res.OK(), nil
}

func (r *Runner) exit(page *quoteflow.Page, err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	page.Wizard.Close()
	r.logger.Debug("terminal wizard stopped", "page_id", page.ID, "err", err)
	return err
}

func (r *Runner) show(markdown string) {
	output := markdown
	if r.renderer != nil {
		if rendered, err := r.renderer(markdown); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.output, strings.TrimSpace(output))
	fmt.Fprintln(r.output)
}

func (r *Runner) printErrors(v domain.StepView) {
	for _, f := range v.Panel.Fields {
		if msg := v.Errors[f.Name]; msg != "" {
			fmt.Fprintln(r.output, tui.FieldError(f.Label+": "+msg))
		}
	}
}

// printBanners writes the banners that were not printed before.
func (r *Runner) printBanners(p *notify.Presenter) {
	for _, b := range p.Banners() {
		if r.seen[b.ID] {
			continue
		}
		r.seen[b.ID] = true
		fmt.Fprintln(r.output, tui.Notice(b))
	}
}

func fieldPrompt(f domain.FieldDescriptor, current string) string {
	var b strings.Builder
	if len(f.Options) > 0 {
		for i, opt := range f.Options {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, opt)
		}
	}
	b.WriteString(f.Label)
	switch {
	case current != "":
		fmt.Fprintf(&b, " [%s]", current)
	case f.Placeholder != "":
		fmt.Fprintf(&b, " (%s)", f.Placeholder)
	}
	b.WriteString(": ")
	return b.String()
}

func commandPrompt(v domain.StepView) string {
	if v.Controls.SubmitVisible {
		return fmt.Sprintf("[Enter] %s, back, quit > ", v.Controls.SubmitLabel)
	}
	if v.Controls.PreviousVisible {
		return "[Enter] next, back, quit > "
	}
	return "[Enter] next, quit > "
}

// pick maps an option number to the option itself. Answers that already
// name an option are kept.
func pick(f domain.FieldDescriptor, answer string) string {
	for _, opt := range f.Options {
		if opt == answer {
			return answer
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1]
	}
	return answer
}
