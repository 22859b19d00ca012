package domain

import "time"

// Activity is one entry in the append-only audit ledger. Activities are
// never updated or deleted; VentureID is nil for events that are not scoped
// to a single venture (for example, recording a venture deletion after the
// venture row is gone).
type Activity struct {
	ID          string            `json:"id"`
	Type        ActivityType      `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	VentureID   *string           `json:"ventureId,omitempty"`
	UserID      string            `json:"userId"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
