package domain

import "time"

// BannerKind distinguishes success from failure notifications.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is a transient, dismissible notification.
// Leaving is set while the exit animation plays, right before removal.
type Banner struct {
	ID        string     `json:"id"`
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	Leaving   bool       `json:"leaving,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BannerEventType names a banner lifecycle change.
type BannerEventType string

const (
	BannerShown   BannerEventType = "shown"
	BannerLeaving BannerEventType = "leaving"
	BannerRemoved BannerEventType = "removed"
)

// BannerEvent is published whenever a banner changes.
type BannerEvent struct {
	Type   BannerEventType `json:"type"`
	Banner Banner          `json:"banner"`
}
