package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorDPO    ActorType = "dpo"
	ActorSystem ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionProfileUpdated    Action = "profile_updated"
	ActionDocumentCreated   Action = "document_created"
	ActionDocumentApproved  Action = "document_approved"
	ActionDocumentArchived  Action = "document_archived"
	ActionIncidentReported  Action = "incident_reported"
	ActionIncidentResolved  Action = "incident_resolved"
	ActionRequestReceived   Action = "request_received"
	ActionRequestResolved   Action = "request_resolved"
	ActionPlanChanged       Action = "plan_changed"
	ActionCustomRuleChanged Action = "custom_rule_changed"
)

// Entry is a single audit trail record.
type Entry struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"org_id"`
	Timestamp  time.Time `json:"timestamp"`
	ActorType  ActorType `json:"actor_type"`
	ActorID    string    `json:"actor_id"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	Summary    string    `json:"summary"`
	Detail     string    `json:"detail,omitempty"`
}

// ListFilter controls which audit entries to return.
type ListFilter struct {
	OrgID  string
	Action Action
	Since  time.Time
	Limit  int
}
