package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/pkg/domain"
)

// DefaultTTL is how long an untouched page stays alive.
const DefaultTTL = 30 * time.Minute

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type pageEntry struct {
	page     *Page
	lastSeen time.Time
}

// Manager orchestrates page access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex
	pages map[string]*pageEntry
	locks map[string]*lockEntry

	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithTTL sets the idle time after which a page expires. Zero keeps pages
// until they are deleted.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty page registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		pages:  make(map[string]*pageEntry),
		locks:  make(map[string]*lockEntry),
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Add registers a new page.
func (m *Manager) Add(p *Page) {
	m.mu.Lock()
	m.pages[p.ID] = &pageEntry{page: p, lastSeen: m.now()}
	n := len(m.pages)
	m.mu.Unlock()
	m.logger.Debug("page created", "page_id", p.ID, "pages", n)
}

// Get returns a live page and marks it as seen.
func (m *Manager) Get(id string) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.pages[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, id)
	}
	e.lastSeen = m.now()
	return e.page, nil
}

// WithPage executes fn while holding the lock of the page.
func (m *Manager) WithPage(ctx context.Context, id string, fn func(context.Context, *Page) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	p, err := m.Get(id)
	if err != nil {
		return err
	}
	return fn(ctx, p)
}

// Delete closes and forgets a page. Unknown IDs are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	e, ok := m.pages[id]
	delete(m.pages, id)
	m.mu.Unlock()

	if ok {
		e.page.Close()
		m.logger.Debug("page closed", "page_id", id)
	}
}

// Len returns the number of live pages.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

// Sweep closes every page idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.ttl)
	var expired []*Page

	m.mu.Lock()
	for id, e := range m.pages {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.page)
			delete(m.pages, id)
		}
	}
	m.mu.Unlock()

	for _, p := range expired {
		p.Close()
	}
	if len(expired) > 0 {
		m.logger.Info("expired idle pages", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps expired pages every interval until ctx is done, then closes
// every remaining page. A non-positive interval disables sweeping.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		<-ctx.Done()
		m.Close()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Close closes every page.
func (m *Manager) Close() {
	m.mu.Lock()
	pages := m.pages
	m.pages = make(map[string]*pageEntry)
	m.mu.Unlock()

	for _, e := range pages {
		e.page.Close()
	}
}
