// Package queue defines the seating.changed message exchanged over the
// broker, the publisher that emits it and the consumer that appends it
// to the audit log.
package queue

import (
    "time"

    "github.com/google/uuid"
)

// SeatingChangedQueue is the durable queue carrying SeatingChangedEvent.
const SeatingChangedQueue = "seating.changed"

// SeatingChangedEvent is published after a mutation has been saved.  It
// carries enough for the audit consumer to log the change without
// reading the guest store.
type SeatingChangedEvent struct {
    EventID    string `json:"event_id"`
    Action     string `json:"action"`      // swap | save | renumber
    Scheme     string `json:"scheme"`      // numbering scheme after the change
    DisplayIDs []int  `json:"display_ids"` // tables as shown in the grid
    DataIDs    []int  `json:"data_ids"`    // table_number values touched
    GroupName  string `json:"group_name,omitempty"`
    RowCount   int    `json:"row_count"` // collection size after the change
    ChangedAt  string `json:"changed_at"`
}

// NewSeatingChangedEvent stamps a new event id and time.
func NewSeatingChangedEvent(action, scheme string, at time.Time) SeatingChangedEvent {
    return SeatingChangedEvent{
        EventID:   uuid.NewString(),
        Action:    action,
        Scheme:    scheme,
        ChangedAt: at.UTC().Format(time.RFC3339),
    }
}
