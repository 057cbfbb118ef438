package domain

import "time"

// SubmissionStatus is the outcome of a submission attempt.
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
	SubmissionCanceled  SubmissionStatus = "canceled"
)

// Receipt is what a submission sink returns on success.
type Receipt struct {
	ID         string    `json:"id"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// SubmissionResult reports how a submission ended.
type SubmissionResult struct {
	Status  SubmissionStatus `json:"status"`
	Receipt Receipt          `json:"receipt,omitempty"`
	Err     error            `json:"-"`
}

// OK reports whether the submission succeeded.
func (r SubmissionResult) OK() bool {
	return r.Status == SubmissionSucceeded
}
