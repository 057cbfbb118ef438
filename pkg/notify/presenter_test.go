package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.BannerEvent
}

func (r *recorder) listen(e domain.BannerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []domain.BannerEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.BannerEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func TestPresenter_AutoDismiss(t *testing.T) {
	rec := &recorder{}
	p := notify.NewPresenter(
		notify.WithTTL(20*time.Millisecond),
		notify.WithExitDuration(10*time.Millisecond),
		notify.WithListener(rec.listen),
	)
	defer p.Close()

	b := p.ShowSuccess("Thanks!")
	assert.Equal(t, domain.BannerSuccess, b.Kind)
	require.Len(t, p.Banners(), 1)

	assert.Eventually(t, func() bool {
		return len(p.Banners()) == 0
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []domain.BannerEventType{
		domain.BannerShown,
		domain.BannerLeaving,
		domain.BannerRemoved,
	}, rec.types())
}

func TestPresenter_LeavingBeforeRemoval(t *testing.T) {
	p := notify.NewPresenter(
		notify.WithTTL(10*time.Millisecond),
		notify.WithExitDuration(time.Hour),
	)
	defer p.Close()

	p.ShowError("Something went wrong")

	assert.Eventually(t, func() bool {
		banners := p.Banners()
		return len(banners) == 1 && banners[0].Leaving
	}, time.Second, 5*time.Millisecond)
}

func TestPresenter_Stacks(t *testing.T) {
	p := notify.NewPresenter(notify.WithTTL(0))
	defer p.Close()

	first := p.ShowSuccess("one")
	second := p.ShowError("two")

	banners := p.Banners()
	require.Len(t, banners, 2)
	assert.Equal(t, first.ID, banners[0].ID)
	assert.Equal(t, second.ID, banners[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPresenter_Dismiss(t *testing.T) {
	rec := &recorder{}
	p := notify.NewPresenter(notify.WithTTL(time.Hour), notify.WithListener(rec.listen))
	defer p.Close()

	b := p.ShowSuccess("bye")
	assert.True(t, p.Dismiss(b.ID))
	assert.False(t, p.Dismiss(b.ID))
	assert.Empty(t, p.Banners())
	assert.Equal(t, []domain.BannerEventType{domain.BannerShown, domain.BannerRemoved}, rec.types())
}

func TestPresenter_CloseStopsTimers(t *testing.T) {
	p := notify.NewPresenter(notify.WithTTL(10*time.Millisecond))
	p.ShowSuccess("stays")
	p.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Len(t, p.Banners(), 1, "auto-dismiss must not fire after Close")
}

func TestPresenter_FieldErrors(t *testing.T) {
	p := notify.NewPresenter()
	defer p.Close()

	p.ShowFieldError("email", "Please enter a valid email")
	p.ShowFieldError("phone", "Please enter a valid phone number")
	p.ShowFieldError("email", "This field is required")

	msg, ok := p.FieldError("email")
	require.True(t, ok)
	assert.Equal(t, "This field is required", msg)

	assert.Equal(t, map[string]string{"phone": "Please enter a valid phone number"}, p.FieldErrors("phone", "zipCode"))

	p.ClearFieldError("email")
	_, ok = p.FieldError("email")
	assert.False(t, ok)

	p.ClearFieldErrors("phone")
	assert.Nil(t, p.FieldErrors())
}
