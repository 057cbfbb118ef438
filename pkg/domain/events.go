package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter        EventType = "step_enter"
	EventValidationFailed EventType = "validation_failed"
	EventSubmitStart      EventType = "submit_start"
	EventSubmitFinish     EventType = "submit_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	PageID    string    `json:"page_id"`
	Form      string    `json:"form"`
}

// StepEvent is emitted when the wizard shows a step.
type StepEvent struct {
	EventBase
	Step       int `json:"step"`
	TotalSteps int `json:"total_steps"`
}

// ValidationEvent is emitted when a step or form fails validation.
type ValidationEvent struct {
	EventBase
	Step   int               `json:"step,omitempty"`
	Errors map[string]string `json:"errors"`
}

// SubmitEvent is emitted around a submission.
type SubmitEvent struct {
	EventBase
	Status   SubmissionStatus `json:"status,omitempty"`
	Duration time.Duration    `json:"duration,omitempty"`
	Err      error            `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnStepEnter        func(context.Context, *StepEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
	OnSubmitStart      func(context.Context, *SubmitEvent)
	OnSubmitFinish     func(context.Context, *SubmitEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter:        chain(h.OnStepEnter, other.OnStepEnter),
		OnValidationFailed: chain(h.OnValidationFailed, other.OnValidationFailed),
		OnSubmitStart:      chain(h.OnSubmitStart, other.OnSubmitStart),
		OnSubmitFinish:     chain(h.OnSubmitFinish, other.OnSubmitFinish),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
