package models

import "time"

// Event types
const (
	EventTypeItemSubmitted    = "ITEM_SUBMITTED"
	EventTypeItemsApproved    = "ITEMS_APPROVED"
	EventTypeItemsRejected    = "ITEMS_REJECTED"
	EventTypeItemsResubmitted = "ITEMS_RESUBMITTED"
	EventTypeItemsRemoved     = "ITEMS_REMOVED"
	EventTypeItemUpdated      = "ITEM_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemRef identifies an item inside a lifecycle event
type ItemRef struct {
	ItemID      int64  `json:"item_id"`
	ProductCode string `json:"product_code"`
}

// ItemSubmittedEvent published when a new item enters the pending store
type ItemSubmittedEvent struct {
	BaseEvent
	Item  ItemRef `json:"item"`
	Actor Actor   `json:"actor"`
}

// ItemsApprovedEvent published when a batch moves pending -> approved
type ItemsApprovedEvent struct {
	BaseEvent
	Items       []ItemRef `json:"items"`
	Actor       Actor     `json:"actor"`
	Observation string    `json:"observation,omitempty"`
}

// ItemsRejectedEvent published when a batch moves pending -> correction
type ItemsRejectedEvent struct {
	BaseEvent
	Items  []ItemRef `json:"items"`
	Actor  Actor     `json:"actor"`
	Reason string    `json:"reason,omitempty"`
}

// ItemsResubmittedEvent published when corrected items return to pending
type ItemsResubmittedEvent struct {
	BaseEvent
	Items []ItemRef `json:"items"`
	Actor Actor     `json:"actor"`
}

// ItemsRemovedEvent published when approved items are archived
type ItemsRemovedEvent struct {
	BaseEvent
	Items  []ItemRef `json:"items"`
	Actor  Actor     `json:"actor"`
	Reason string    `json:"reason,omitempty"`
}

// ItemUpdatedEvent published after an in-place edit of an approved item
type ItemUpdatedEvent struct {
	BaseEvent
	Item           ItemRef  `json:"item"`
	Actor          Actor    `json:"actor"`
	ChangedColumns []string `json:"changed_columns"`
}
