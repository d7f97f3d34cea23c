package requests

import "time"

// Kind is the kind of right being exercised by a data subject.
type Kind string

const (
	KindAccess     Kind = "access"
	KindCorrection Kind = "correction"
	KindErasure    Kind = "erasure"
	KindObjection  Kind = "objection"
)

// Status tracks a request's handling lifecycle.
type Status string

const (
	StatusReceived   Status = "received"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// statutoryDays is the response deadline per request kind under the
// Protection of Privacy Law.
var statutoryDays = map[Kind]int{
	KindAccess:     30,
	KindCorrection: 30,
	KindErasure:    30,
	KindObjection:  21,
}

// DueDays returns the statutory response window in days for a request kind.
// Unknown kinds get the general 30-day window.
func DueDays(kind Kind) int {
	if d, ok := statutoryDays[kind]; ok {
		return d
	}
	return 30
}

// Request is one data-subject rights request routed to the organization.
type Request struct {
	ID           string     `json:"id"`
	OrgID        string     `json:"org_id"`
	Kind         Kind       `json:"kind"`
	SubjectName  string     `json:"subject_name"`
	SubjectEmail string     `json:"subject_email,omitempty"`
	Details      string     `json:"details,omitempty"`
	Status       Status     `json:"status"`
	Assignee     string     `json:"assignee"`
	DueAt        time.Time  `json:"due_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	Resolution   string     `json:"resolution,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Overdue reports whether the request passed its deadline unresolved.
func (r *Request) Overdue(now time.Time) bool {
	return (r.Status == StatusReceived || r.Status == StatusInProgress) && now.After(r.DueAt)
}

// ListFilter controls which requests to return.
type ListFilter struct {
	OrgID       string
	Kind        Kind
	Status      Status
	OverdueOnly bool
	Limit       int
}
