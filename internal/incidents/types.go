package incidents

import "time"

// Severity grades how bad an incident is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Status tracks an incident's lifecycle.
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusReported      Status = "reported"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

// IsOpen reports whether a status still counts as an unresolved incident.
func (s Status) IsOpen() bool {
	return s != StatusResolved && s != StatusClosed
}

// Incident is a security incident record.
type Incident struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"org_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Severity    Severity   `json:"severity"`
	Status      Status     `json:"status"`
	ReportedBy  string     `json:"reported_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListFilter controls which incidents to return.
type ListFilter struct {
	OrgID    string
	Status   Status
	OpenOnly bool
	Limit    int
}
