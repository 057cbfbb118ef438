package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow/internal/runtime"
	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
	"github.com/nkinsurance/quoteflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPage(id string) *session.Page {
	ctx := context.Background()
	notices := notify.NewPresenter(notify.WithTTL(0))
	return &session.Page{
		ID:      id,
		Notices: notices,
		Wizard: runtime.NewWizard(ctx, catalog.Default().Quote,
			runtime.WithPageID(id), runtime.WithPresenter(notices)),
		CreatedAt: time.Now(),
	}
}

func TestManager_GetUnknownPage(t *testing.T) {
	m := session.NewManager()
	_, err := m.Get("missing")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	err = m.WithPage(context.Background(), "missing", func(context.Context, *session.Page) error {
		t.Fatal("fn must not run for an unknown page")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestManager_PagesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager()
	a, b := newPage("a"), newPage("b")
	m.Add(a)
	m.Add(b)

	require.NoError(t, m.WithPage(ctx, "a", func(ctx context.Context, p *session.Page) error {
		return p.Wizard.SetValue(ctx, "firstName", "Ana")
	}))

	got, err := m.Get("b")
	require.NoError(t, err)
	assert.Empty(t, got.Wizard.Values())
	assert.Equal(t, 2, m.Len())
}

func TestManager_WithPageSerializes(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager()
	m.Add(newPage("p"))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		overlap bool
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithPage(ctx, "p", func(context.Context, *session.Page) error {
				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := session.NewManager(session.WithTTL(time.Minute), session.WithClock(clock))

	m.Add(newPage("old"))
	now = now.Add(50 * time.Second)
	m.Add(newPage("fresh"))
	now = now.Add(20 * time.Second)

	assert.Equal(t, 1, m.Sweep())
	_, err := m.Get("old")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
	_, err = m.Get("fresh")
	assert.NoError(t, err)
}

func TestManager_SweepDisabled(t *testing.T) {
	m := session.NewManager(session.WithTTL(0))
	m.Add(newPage("p"))
	assert.Zero(t, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestManager_DeleteClosesPendingSubmission(t *testing.T) {
	ctx := context.Background()
	notices := notify.NewPresenter(notify.WithTTL(0))
	def := domain.WizardDefinition{Steps: []domain.StepDefinition{{Number: 1, Title: "Review"}}}
	blocked := func(ctx context.Context, _ domain.Lead) (domain.Receipt, error) {
		<-ctx.Done()
		return domain.Receipt{}, ctx.Err()
	}
	w := runtime.NewWizard(ctx, def,
		runtime.WithPresenter(notices),
		runtime.WithSubmitter(submitterFunc(blocked)))

	m := session.NewManager()
	m.Add(&session.Page{ID: "p", Wizard: w, Notices: notices})

	sub, err := w.Submit(ctx)
	require.NoError(t, err)

	m.Delete("p")

	res, err := sub.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionCanceled, res.Status)
	assert.Zero(t, m.Len())
}

func TestManager_RunClosesOnShutdown(t *testing.T) {
	m := session.NewManager()
	m.Add(newPage("p"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, m.Len())
}

type submitterFunc func(context.Context, domain.Lead) (domain.Receipt, error)

func (f submitterFunc) Submit(ctx context.Context, lead domain.Lead) (domain.Receipt, error) {
	return f(ctx, lead)
}
