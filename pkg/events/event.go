package events

import "time"

// Event codes carried on the bus. The notification worker fans each of
// these out to its delivery channels.
const (
	ReportCreated        = "REPORT_CREATED"
	ReportUpdated        = "REPORT_UPDATED"
	ReportDeleted        = "REPORT_DELETED"
	MissionCreated       = "MISSION_CREATED"
	MissionAssigned      = "MISSION_ASSIGNED"
	MissionStatusChanged = "MISSION_STATUS_CHANGED"
	UserRoleChanged      = "USER_ROLE_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REPORT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds an event stamped now.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
