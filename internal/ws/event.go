// Package ws implements the websocket push channel and its event types
// (snapshot/milestone/budget-threshold notifications, agent token
// streaming), keyed by user_id rather than the teacher's workspace_id
// (spec §5's per-user isolation model). No store, handler or the agent
// publishes these events; the hub only holds the connections.
package ws

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the verb half of an event's dotted type string.
type EventType string

const (
	EventCreated          EventType = "created"
	EventUpdated          EventType = "updated"
	EventThresholdCrossed EventType = "threshold_crossed"
	EventMilestoneReached EventType = "milestone_reached"
	EventToken            EventType = "token"
	EventDone             EventType = "done"
)

// EntityType is the noun half of an event's dotted type string.
type EntityType string

const (
	EntitySnapshot       EntityType = "snapshot"
	EntityMilestone      EntityType = "milestone"
	EntityBudget         EntityType = "budget"
	EntityAgentResponse  EntityType = "agent_response"
)

// Event is the message shape pushed to every connected client.
type Event struct {
	Type      string      `json:"type"`
	Entity    EntityType  `json:"entity"`
	Payload   any         `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent builds an Event with the dotted "entity.type" convention.
func NewEvent(entity EntityType, eventType EventType, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entity, eventType),
		Entity:    entity,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) { return json.Marshal(e) }

// SnapshotUpdated notifies clients a new docs.Snapshot has landed.
func SnapshotUpdated(payload any) Event { return NewEvent(EntitySnapshot, EventUpdated, payload) }

// MilestoneReached notifies clients an XP milestone fired (spec §3's
// Docs store "milestones" entity).
func MilestoneReached(payload any) Event {
	return NewEvent(EntityMilestone, EventMilestoneReached, payload)
}

// BudgetThresholdCrossed notifies clients a budget crossed its alert
// threshold (spec §3 Planning store "budgets").
func BudgetThresholdCrossed(payload any) Event {
	return NewEvent(EntityBudget, EventThresholdCrossed, payload)
}

// AgentToken streams one incremental chunk of an in-flight agent response.
func AgentToken(payload any) Event {
	return NewEvent(EntityAgentResponse, EventToken, payload)
}

// AgentResponseDone closes out a streamed agent response.
func AgentResponseDone(payload any) Event {
	return NewEvent(EntityAgentResponse, EventDone, payload)
}
