package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnStart EventType = "turn_start"
	EventTurnEnd   EventType = "turn_end"
	EventSlotFill  EventType = "slot_fill"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent marks the start or end of one processed utterance.
type TurnEvent struct {
	EventBase
	Utterance string `json:"utterance,omitempty"`
	HitNode   string `json:"hit_node,omitempty"`
	Action    Action `json:"action,omitempty"`
}

// SlotEvent records a slot value extracted from user input.
type SlotEvent struct {
	EventBase
	Node  string `json:"node"`
	Slot  string `json:"slot"`
	Value string `json:"value"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurnStart func(context.Context, *TurnEvent)
	OnTurnEnd   func(context.Context, *TurnEvent)
	OnSlotFill  func(context.Context, *SlotEvent)
}
