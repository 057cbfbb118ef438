/*
Package runner drives the quote wizard of a page from a terminal.

It renders the current step, asks for every field of the step line by line
and then for a command. The runner never decides anything on its own: the
wizard gates navigation and submission, and the runner prints what the wizard
and its notification presenter report.

# Commands

At the end of each step the runner accepts:

  - an empty line, "next" or "n": go to the next step, or submit on the last one
  - "back" or "b": go to the previous step
  - "quit" or "q": leave without submitting

# Usage

	page := engine.NewPage(ctx)
	defer page.Close()

	r := runner.NewRunner(
		runner.WithRenderer(tui.NewRenderer()),
		runner.WithLogger(logger),
	)
	if err := r.Run(ctx, page); err != nil {
		log.Fatal(err)
	}
*/
package runner
