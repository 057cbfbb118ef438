package runtime

import (
	"log/slog"
	"time"

	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/pkg/adapters/simulated"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
	"github.com/nkinsurance/quoteflow/pkg/ports"
)

// DefaultSubmitTimeout bounds a submission that the sink never answers.
const DefaultSubmitTimeout = 30 * time.Second

// options holds the collaborators shared by wizards and forms.
type options struct {
	pageID        string
	submitter     ports.Submitter
	presenter     *notify.Presenter
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	submitTimeout time.Duration
	maxInputSize  int
}

// Option configures a Wizard or a Form.
type Option func(*options)

// WithPageID tags events and leads with the page the component lives on.
func WithPageID(id string) Option {
	return func(o *options) {
		o.pageID = id
	}
}

// WithSubmitter sets the submission sink.
func WithSubmitter(s ports.Submitter) Option {
	return func(o *options) {
		o.submitter = s
	}
}

// WithPresenter shares a notification presenter, typically one per page.
func WithPresenter(p *notify.Presenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

// WithLifecycleHooks registers observability hooks.
// Hooks run while the component is locked and must not call back into it.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSubmitTimeout bounds every submission. Zero disables the bound.
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *options) {
		o.submitTimeout = d
	}
}

// WithMaxInputSize limits the size of a single field value in bytes.
func WithMaxInputSize(n int) Option {
	return func(o *options) {
		o.maxInputSize = n
	}
}

func buildOptions(opts []Option) options {
	o := options{
		submitTimeout: DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.presenter == nil {
		o.presenter = notify.NewPresenter(notify.WithLogger(o.logger))
	}
	if o.submitter == nil {
		o.submitter = simulated.New(simulated.WithLogger(o.logger))
	}
	return o
}
