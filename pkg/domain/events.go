package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRender EventType = "render"
	EventIssue  EventType = "issue"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RenderEvent describes a completed render pass.
type RenderEvent struct {
	EventBase
	Shape    string        `json:"shape"`
	Nodes    int           `json:"nodes"`
	Bytes    int           `json:"bytes"`
	Issues   int           `json:"issues"`
	Duration time.Duration `json:"duration"`
}

// IssueEvent carries one problem found during a render pass.
type IssueEvent struct {
	EventBase
	Issue Issue `json:"issue"`
}

// RenderHooks defines callbacks for renderer observability.
type RenderHooks struct {
	OnRender func(context.Context, *RenderEvent)
	OnIssue  func(context.Context, *IssueEvent)
}
