package quoteflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/internal/runtime"
	"github.com/nkinsurance/quoteflow/pkg/adapters/simulated"
	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/nkinsurance/quoteflow/pkg/session"
)

// FormDelay is the simulated latency of the contact and newsletter forms.
const FormDelay = 1500 * time.Millisecond

type (
	// Wizard is the multi-step quote form.
	Wizard = runtime.Wizard
	// Form is a single-step form.
	Form = runtime.Form
	// Submission is a pending hand-off to a submission sink.
	Submission = runtime.Submission
	// Page is one loaded instance of the site.
	Page = session.Page
)

// Engine is the high-level entry point of the library.
// It holds the catalog and the collaborators shared by every page.
type Engine struct {
	catalog       *catalog.Catalog
	submitter     ports.Submitter
	formSubmitter ports.Submitter
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	submitTimeout time.Duration
	noticeTTL     time.Duration
	maxInputSize  int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the embedded form catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSubmitter sets the sink of quote submissions.
func WithSubmitter(s ports.Submitter) Option {
	return func(e *Engine) {
		e.submitter = s
	}
}

// WithFormSubmitter sets the sink of contact and newsletter submissions.
func WithFormSubmitter(s ports.Submitter) Option {
	return func(e *Engine) {
		e.formSubmitter = s
	}
}

// WithSubmitTimeout bounds every submission.
func WithSubmitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.submitTimeout = d
	}
}

// WithNoticeTTL sets how long banners stay on screen.
func WithNoticeTTL(d time.Duration) Option {
	return func(e *Engine) {
		e.noticeTTL = d
	}
}

// WithMaxInputSize limits the size of a single field value.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInputSize = n
	}
}

// New initializes an Engine. Without options it serves the embedded catalog
// and simulates submissions.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		submitTimeout: runtime.DefaultSubmitTimeout,
		noticeTTL:     notify.DefaultTTL,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}
	if err := eng.catalog.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if eng.submitter == nil {
		eng.submitter = simulated.New(simulated.WithLogger(eng.logger))
	}
	if eng.formSubmitter == nil {
		eng.formSubmitter = simulated.New(
			simulated.WithDelay(FormDelay),
			simulated.WithLogger(eng.logger),
		)
	}
	return eng, nil
}

// Catalog returns the form definitions served by the engine.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// NewPresenter creates the notification presenter of one page.
func (e *Engine) NewPresenter(opts ...notify.Option) *notify.Presenter {
	base := []notify.Option{
		notify.WithTTL(e.noticeTTL),
		notify.WithLogger(e.logger),
	}
	return notify.NewPresenter(append(base, opts...)...)
}

func (e *Engine) componentOptions(pageID string, presenter *notify.Presenter, s ports.Submitter) []runtime.Option {
	return []runtime.Option{
		runtime.WithPageID(pageID),
		runtime.WithPresenter(presenter),
		runtime.WithSubmitter(s),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger),
		runtime.WithSubmitTimeout(e.submitTimeout),
		runtime.WithMaxInputSize(e.maxInputSize),
	}
}

// NewWizard builds a quote wizard positioned on step 1.
func (e *Engine) NewWizard(ctx context.Context, pageID string, presenter *notify.Presenter) *Wizard {
	return runtime.NewWizard(ctx, e.catalog.Quote, e.componentOptions(pageID, presenter, e.submitter)...)
}

// NewContactForm builds an empty contact form.
func (e *Engine) NewContactForm(pageID string, presenter *notify.Presenter) *Form {
	return runtime.NewForm(e.catalog.Contact, e.componentOptions(pageID, presenter, e.formSubmitter)...)
}

// NewNewsletterForm builds an empty newsletter form.
func (e *Engine) NewNewsletterForm(pageID string, presenter *notify.Presenter) *Form {
	return runtime.NewForm(e.catalog.Newsletter, e.componentOptions(pageID, presenter, e.formSubmitter)...)
}

// NewPage creates a fresh page instance with its own wizard, forms and
// presenter. Presenter options such as a banner listener apply to this page
// only.
func (e *Engine) NewPage(ctx context.Context, opts ...notify.Option) *Page {
	id := uuid.NewString()
	presenter := e.NewPresenter(opts...)
	return &Page{
		ID:         id,
		Wizard:     e.NewWizard(ctx, id, presenter),
		Contact:    e.NewContactForm(id, presenter),
		Newsletter: e.NewNewsletterForm(id, presenter),
		Notices:    presenter,
		CreatedAt:  time.Now(),
	}
}
