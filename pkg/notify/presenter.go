// Package notify presents transient banners and per-field error messages.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/schedule"
)

const (
	// DefaultTTL is how long a banner stays before it starts leaving.
	DefaultTTL = 5 * time.Second
	// DefaultExit is the length of the exit animation.
	DefaultExit = 500 * time.Millisecond
)

// Listener receives banner lifecycle events. It must not block.
type Listener func(domain.BannerEvent)

// Presenter owns the banners and field errors of one page.
// Banners are not queued: concurrent calls stack.
type Presenter struct {
	mu          sync.Mutex
	banners     []domain.Banner
	timers      map[string]*schedule.Task
	fieldErrors map[string]string

	ctx    context.Context
	cancel context.CancelFunc

	ttl      time.Duration
	exit     time.Duration
	listener Listener
	logger   *slog.Logger
}

// Option configures the Presenter.
type Option func(*Presenter)

// WithTTL sets how long banners stay visible. Zero disables auto-dismiss.
func WithTTL(ttl time.Duration) Option {
	return func(p *Presenter) {
		p.ttl = ttl
	}
}

// WithExitDuration sets the delay between "leaving" and removal.
func WithExitDuration(d time.Duration) Option {
	return func(p *Presenter) {
		p.exit = d
	}
}

// WithListener registers a banner event listener.
func WithListener(l Listener) Option {
	return func(p *Presenter) {
		p.listener = l
	}
}

// WithLogger configures a logger for the Presenter.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) {
		p.logger = logger
	}
}

// NewPresenter creates an empty Presenter.
func NewPresenter(opts ...Option) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Presenter{
		timers:      make(map[string]*schedule.Task),
		fieldErrors: make(map[string]string),
		ctx:         ctx,
		cancel:      cancel,
		ttl:         DefaultTTL,
		exit:        DefaultExit,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetListener replaces the banner event listener.
func (p *Presenter) SetListener(l Listener) {
	p.mu.Lock()
	p.listener = l
	p.mu.Unlock()
}

// ShowSuccess displays a success banner.
func (p *Presenter) ShowSuccess(message string) domain.Banner {
	return p.show(domain.BannerSuccess, message)
}

// ShowError displays an error banner.
func (p *Presenter) ShowError(message string) domain.Banner {
	return p.show(domain.BannerError, message)
}

func (p *Presenter) show(kind domain.BannerKind, message string) domain.Banner {
	b := domain.Banner{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	p.mu.Lock()
	if p.ctx.Err() != nil {
		p.mu.Unlock()
		return b
	}
	p.banners = append(p.banners, b)
	if p.ttl > 0 {
		id := b.ID
		p.timers[id] = schedule.After(p.ctx, p.ttl, func(ctx context.Context) error {
			p.setLeaving(id)
			if p.exit > 0 {
				timer := time.NewTimer(p.exit)
				defer timer.Stop()
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			}
			p.remove(id, false)
			return nil
		})
	}
	listener := p.listener
	p.mu.Unlock()

	p.logger.Debug("banner shown", "banner_id", b.ID, "kind", kind)
	emit(listener, domain.BannerEvent{Type: domain.BannerShown, Banner: b})
	return b
}

func (p *Presenter) setLeaving(id string) {
	p.mu.Lock()
	var event *domain.BannerEvent
	for i := range p.banners {
		if p.banners[i].ID == id {
			p.banners[i].Leaving = true
			event = &domain.BannerEvent{Type: domain.BannerLeaving, Banner: p.banners[i]}
			break
		}
	}
	listener := p.listener
	p.mu.Unlock()

	if event != nil {
		emit(listener, *event)
	}
}

func (p *Presenter) remove(id string, cancelTimer bool) bool {
	p.mu.Lock()
	var removed *domain.Banner
	for i := range p.banners {
		if p.banners[i].ID == id {
			b := p.banners[i]
			removed = &b
			p.banners = append(p.banners[:i], p.banners[i+1:]...)
			break
		}
	}
	if t, ok := p.timers[id]; ok {
		if cancelTimer {
			t.Cancel()
		}
		delete(p.timers, id)
	}
	listener := p.listener
	p.mu.Unlock()

	if removed == nil {
		return false
	}
	emit(listener, domain.BannerEvent{Type: domain.BannerRemoved, Banner: *removed})
	return true
}

// Dismiss removes a banner right away, as when its close button is clicked.
func (p *Presenter) Dismiss(id string) bool {
	return p.remove(id, true)
}

// Banners returns the banners currently on screen, oldest first.
func (p *Presenter) Banners() []domain.Banner {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.banners) == 0 {
		return nil
	}
	out := make([]domain.Banner, len(p.banners))
	copy(out, p.banners)
	return out
}

// ShowFieldError marks field as failing with message. A previous message for
// the same field is replaced.
func (p *Presenter) ShowFieldError(field, message string) {
	p.mu.Lock()
	p.fieldErrors[field] = message
	p.mu.Unlock()
}

// ClearFieldError removes the error state of field.
func (p *Presenter) ClearFieldError(field string) {
	p.mu.Lock()
	delete(p.fieldErrors, field)
	p.mu.Unlock()
}

// FieldError returns the message shown on field, if any.
func (p *Presenter) FieldError(field string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg, ok := p.fieldErrors[field]
	return msg, ok
}

// FieldErrors returns a copy of every field error, restricted to names when
// any are given.
func (p *Presenter) FieldErrors(names ...string) map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]string)
	if len(names) == 0 {
		for k, v := range p.fieldErrors {
			out[k] = v
		}
	} else {
		for _, n := range names {
			if v, ok := p.fieldErrors[n]; ok {
				out[n] = v
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ClearFieldErrors removes the error state of the given fields.
func (p *Presenter) ClearFieldErrors(names ...string) {
	p.mu.Lock()
	for _, n := range names {
		delete(p.fieldErrors, n)
	}
	p.mu.Unlock()
}

// Close cancels every pending auto-dismiss. Banners shown after Close are
// returned but never displayed.
func (p *Presenter) Close() {
	p.cancel()
}

func emit(l Listener, e domain.BannerEvent) {
	if l != nil {
		l(e)
	}
}
