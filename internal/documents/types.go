package documents

import "time"

// Type identifies a kind of generated compliance document.
type Type string

const (
	TypeDPOAppointment      Type = "dpo_appointment"
	TypePrivacyPolicy       Type = "privacy_policy"
	TypeSecurityProcedures  Type = "security_procedures"
	TypeDatabaseRegistration Type = "database_registration"
	TypeROPA                Type = "ropa"
	TypeConsentForm         Type = "consent_form"
	TypeDPA                 Type = "dpa"

	// Legacy type names still present in older organizations.
	TypeSecurityPolicy     Type = "security_policy"
	TypeDatabaseDefinition Type = "database_definition"
)

var allTypes = []Type{
	TypeDPOAppointment,
	TypePrivacyPolicy,
	TypeSecurityProcedures,
	TypeDatabaseRegistration,
	TypeROPA,
	TypeConsentForm,
	TypeDPA,
	TypeSecurityPolicy,
	TypeDatabaseDefinition,
}

// Valid reports whether t is a known document type.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TypeNames returns the names of all known document types.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	return names
}

// Status tracks a document through the draft -> DPO approval workflow.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingReview    Status = "pending_review"
	StatusPendingSignature Status = "pending_signature"
	StatusActive           Status = "active"
	StatusArchived         Status = "archived"
)

// Document is a generated compliance document record.
type Document struct {
	ID         string     `json:"id"`
	OrgID      string     `json:"org_id"`
	Type       Type       `json:"type"`
	Title      string     `json:"title"`
	Status     Status     `json:"status"`
	Content    string     `json:"content,omitempty"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ListFilter controls which documents to return.
type ListFilter struct {
	OrgID  string
	Type   Type
	Status Status
	Limit  int
}
