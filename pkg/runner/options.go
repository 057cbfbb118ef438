package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets where answers are read from. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.input = r
	}
}

// WithOutput sets where steps and prompts are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.output = w
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.logger = logger
	}
}

// WithRenderer configures the content renderer (e.g. markdown to ANSI).
func WithRenderer(renderer ContentRenderer) Option {
	return func(rn *Runner) {
		rn.renderer = renderer
	}
}
