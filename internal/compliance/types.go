package compliance

import (
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/profile"
)

// Status is the resolution state of a compliance action. It is not a state
// machine: every derivation recomputes statuses fresh from the inputs.
type Status string

const (
	StatusAutoResolved  Status = "auto_resolved"
	StatusPendingDPO    Status = "pending_dpo"
	StatusPendingUser   Status = "pending_user"
	StatusNotApplicable Status = "not_applicable"
	StatusCompleted     Status = "completed"
)

// Owner identifies who must act next on an action.
type Owner string

const (
	OwnerSystem Owner = "system"
	OwnerDPO    Owner = "dpo"
	OwnerUser   Owner = "user"
)

// Priority orders actions in the UI. It does not affect scoring.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Category is the UI grouping bucket for an action.
type Category string

const (
	CategoryDone       Category = "done"
	CategoryUserAction Category = "user_action"
	CategoryDPOPending Category = "dpo_pending"
	CategoryReporting  Category = "reporting"
)

// SecurityLevel is the classified security tier under the Data Security
// Regulations.
type SecurityLevel string

const (
	SecurityBasic  SecurityLevel = "basic"
	SecurityMedium SecurityLevel = "medium"
	SecurityHigh   SecurityLevel = "high"
)

// securityLevelHe maps security levels to their Hebrew labels.
var securityLevelHe = map[SecurityLevel]string{
	SecurityBasic:  "בסיסית",
	SecurityMedium: "בינונית",
	SecurityHigh:   "גבוהה",
}

// Action is one unit of compliance work, either already satisfied or
// outstanding. Identity is the ID string within one derivation result.
type Action struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	LegalBasis       string         `json:"legalBasis"`
	Status           Status         `json:"status"`
	Owner            Owner          `json:"owner"`
	Priority         Priority       `json:"priority"`
	Category         Category       `json:"category"`
	EstimatedMinutes int            `json:"estimatedMinutes,omitempty"`
	DocumentType     documents.Type `json:"documentType,omitempty"`
	ActionPath       string         `json:"actionPath,omitempty"`
	ResolvedNote     string         `json:"resolvedNote,omitempty"`
}

// Summary is the aggregate result of one derivation call.
type Summary struct {
	Actions          []Action      `json:"actions"`
	Score            int           `json:"score"`
	SecurityLevel    SecurityLevel `json:"securityLevel"`
	SecurityLevelHe  string        `json:"securityLevelHe"`
	TotalRecords     int           `json:"totalRecords"`
	DBCount          int           `json:"dbCount"`
	NeedsReporting   bool          `json:"needsReporting"`
	ReportingReasons []string      `json:"reportingReasons"`
	NeedsCiso        bool          `json:"needsCiso"`
	CisoReason       string        `json:"cisoReason,omitempty"`
}

// Metrics is the normalized scalar view of an intake profile.
type Metrics struct {
	TotalRecords      int
	MaxAccess         int
	DBCount           int
	HasMedical        bool
	HasCameras        bool
	HasCVs            bool
	HasWebsiteLeads   bool
	SensitiveIndustry bool
	HasSensitiveData  bool
}

// Classification is the qualitative risk posture derived from the metrics.
type Classification struct {
	SecurityLevel    SecurityLevel
	NeedsReporting   bool
	ReportingReasons []string
	NeedsCiso        bool
	CisoReason       string
}

// Context carries everything a rule may inspect. Rules read it, never
// mutate it.
type Context struct {
	Profile        *profile.Profile
	Metrics        Metrics
	Classification Classification
	Documents      []documents.Document
	Incidents      []incidents.Incident
}

// hasDoc reports whether any document of one of the given types exists,
// regardless of status. A non-active document counts as a draft.
func (c *Context) hasDoc(types ...documents.Type) bool {
	for _, d := range c.Documents {
		for _, t := range types {
			if d.Type == t {
				return true
			}
		}
	}
	return false
}

// hasActiveDoc reports whether a DPO-approved document of one of the given
// types exists.
func (c *Context) hasActiveDoc(types ...documents.Type) bool {
	for _, d := range c.Documents {
		if d.Status != documents.StatusActive {
			continue
		}
		for _, t := range types {
			if d.Type == t {
				return true
			}
		}
	}
	return false
}

// openIncidentCount counts incidents whose status is neither resolved nor
// closed.
func (c *Context) openIncidentCount() int {
	count := 0
	for _, inc := range c.Incidents {
		if inc.Status.IsOpen() {
			count++
		}
	}
	return count
}
