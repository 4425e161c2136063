package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"catalog-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing lifecycle events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishItemSubmitted publishes ItemSubmitted event
func (ep *EventPublisher) PublishItemSubmitted(ctx context.Context, event *models.ItemSubmittedEvent) error {
	key := fmt.Sprintf("item-%d", event.Item.ItemID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishItemsApproved publishes ItemsApproved event
func (ep *EventPublisher) PublishItemsApproved(ctx context.Context, event *models.ItemsApprovedEvent) error {
	return ep.producer.PublishEvent(ctx, batchKey(event.Items), event)
}

// PublishItemsRejected publishes ItemsRejected event
func (ep *EventPublisher) PublishItemsRejected(ctx context.Context, event *models.ItemsRejectedEvent) error {
	return ep.producer.PublishEvent(ctx, batchKey(event.Items), event)
}

// PublishItemsResubmitted publishes ItemsResubmitted event
func (ep *EventPublisher) PublishItemsResubmitted(ctx context.Context, event *models.ItemsResubmittedEvent) error {
	return ep.producer.PublishEvent(ctx, batchKey(event.Items), event)
}

// PublishItemsRemoved publishes ItemsRemoved event
func (ep *EventPublisher) PublishItemsRemoved(ctx context.Context, event *models.ItemsRemovedEvent) error {
	return ep.producer.PublishEvent(ctx, batchKey(event.Items), event)
}

// PublishItemUpdated publishes ItemUpdated event
func (ep *EventPublisher) PublishItemUpdated(ctx context.Context, event *models.ItemUpdatedEvent) error {
	key := fmt.Sprintf("item-%d", event.Item.ItemID)
	return ep.producer.PublishEvent(ctx, key, event)
}

func batchKey(items []models.ItemRef) string {
	if len(items) == 0 {
		return "batch-empty"
	}
	return fmt.Sprintf("item-%d", items[0].ItemID)
}

// EventHandler routes incoming lifecycle events
type EventHandler struct {
	onItemSubmitted    func(context.Context, *models.ItemSubmittedEvent) error
	onItemsApproved    func(context.Context, *models.ItemsApprovedEvent) error
	onItemsRejected    func(context.Context, *models.ItemsRejectedEvent) error
	onItemsResubmitted func(context.Context, *models.ItemsResubmittedEvent) error
	onItemsRemoved     func(context.Context, *models.ItemsRemovedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnItemSubmitted registers a handler for ItemSubmitted events
func (eh *EventHandler) OnItemSubmitted(handler func(context.Context, *models.ItemSubmittedEvent) error) {
	eh.onItemSubmitted = handler
}

// OnItemsApproved registers a handler for ItemsApproved events
func (eh *EventHandler) OnItemsApproved(handler func(context.Context, *models.ItemsApprovedEvent) error) {
	eh.onItemsApproved = handler
}

// OnItemsRejected registers a handler for ItemsRejected events
func (eh *EventHandler) OnItemsRejected(handler func(context.Context, *models.ItemsRejectedEvent) error) {
	eh.onItemsRejected = handler
}

// OnItemsResubmitted registers a handler for ItemsResubmitted events
func (eh *EventHandler) OnItemsResubmitted(handler func(context.Context, *models.ItemsResubmittedEvent) error) {
	eh.onItemsResubmitted = handler
}

// OnItemsRemoved registers a handler for ItemsRemoved events
func (eh *EventHandler) OnItemsRemoved(handler func(context.Context, *models.ItemsRemovedEvent) error) {
	eh.onItemsRemoved = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeItemSubmitted:
		if eh.onItemSubmitted != nil {
			var event models.ItemSubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemSubmitted event: %w", err)
			}
			return eh.onItemSubmitted(ctx, &event)
		}

	case models.EventTypeItemsApproved:
		if eh.onItemsApproved != nil {
			var event models.ItemsApprovedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemsApproved event: %w", err)
			}
			return eh.onItemsApproved(ctx, &event)
		}

	case models.EventTypeItemsRejected:
		if eh.onItemsRejected != nil {
			var event models.ItemsRejectedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemsRejected event: %w", err)
			}
			return eh.onItemsRejected(ctx, &event)
		}

	case models.EventTypeItemsResubmitted:
		if eh.onItemsResubmitted != nil {
			var event models.ItemsResubmittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemsResubmitted event: %w", err)
			}
			return eh.onItemsResubmitted(ctx, &event)
		}

	case models.EventTypeItemsRemoved:
		if eh.onItemsRemoved != nil {
			var event models.ItemsRemovedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemsRemoved event: %w", err)
			}
			return eh.onItemsRemoved(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
