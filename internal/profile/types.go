package profile

import "time"

// Database kinds offered by the intake form. Custom entries are free text
// and live alongside these in a separate list.
const (
	DBCustomers    = "customers"
	DBEmployees    = "employees"
	DBSuppliers    = "suppliers"
	DBMarketing    = "marketing"
	DBMembers      = "members"
	DBMedical      = "medical"
	DBCameras      = "cameras"
	DBCVs          = "cvs"
	DBWebsiteLeads = "website_leads"
)

// Industries with heightened obligations under the Data Security Regulations.
const (
	IndustryHealth  = "health"
	IndustryFinance = "finance"
)

// DatabaseDetail holds the per-database answers of the intake form.
// Every field is optional: older profiles predate some questions.
type DatabaseDetail struct {
	Fields    []string `json:"fields,omitempty"`
	Size      string   `json:"size,omitempty"`      // record-count bracket
	Access    string   `json:"access,omitempty"`    // access-tier bracket
	Retention string   `json:"retention,omitempty"` // e.g. "never", "quarterly", "policy"
}

// Profile is an organization's self-reported data-processing profile.
// It is persisted as an opaque JSON blob and has evolved across several
// onboarding revisions, so every field must be treated as optional.
type Profile struct {
	Databases        []string                  `json:"databases,omitempty"`
	CustomDatabases  []string                  `json:"customDatabases,omitempty"`
	DBDetails        map[string]DatabaseDetail `json:"dbDetails,omitempty"`
	Processors       []string                  `json:"processors,omitempty"`
	CustomProcessors []string                  `json:"customProcessors,omitempty"`
	ConsentStatus    string                    `json:"consentStatus,omitempty"` // "yes", "no", "partial"
	AccessControl    string                    `json:"accessControl,omitempty"` // "all" means everyone sees everything
	Industry         string                    `json:"industry,omitempty"`
	SecurityOwner    string                    `json:"securityOwner,omitempty"` // "none", "it", "external", ...
	CameraOwner      string                    `json:"cameraOwner,omitempty"`
}

// Record wraps a profile with its storage metadata.
type Record struct {
	OrgID     string    `json:"org_id"`
	Answers   Profile   `json:"answers"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// processorLabels maps the fixed processor vocabulary to display labels.
var processorLabels = map[string]string{
	"crm":             "CRM system",
	"payroll":         "Payroll provider",
	"accounting":      "Accounting service",
	"cloud_storage":   "Cloud storage provider",
	"email_marketing": "Email marketing platform",
	"it_support":      "IT support vendor",
	"hosting":         "Website hosting provider",
	"hr_software":     "HR management software",
}

// ProcessorLabel returns the display label for a processor key.
// Unrecognized keys are returned as-is: they are custom entries.
func ProcessorLabel(key string) string {
	if label, ok := processorLabels[key]; ok {
		return label
	}
	return key
}

// AllDatabases returns every declared database kind, predefined then custom.
func (p *Profile) AllDatabases() []string {
	all := make([]string, 0, len(p.Databases)+len(p.CustomDatabases))
	all = append(all, p.Databases...)
	all = append(all, p.CustomDatabases...)
	return all
}

// HasDatabase reports whether the given predefined kind was declared.
func (p *Profile) HasDatabase(kind string) bool {
	for _, db := range p.Databases {
		if db == kind {
			return true
		}
	}
	return false
}

// ProcessorLabels returns display labels for every declared processor,
// fixed vocabulary first, then custom entries verbatim.
func (p *Profile) ProcessorLabels() []string {
	labels := make([]string, 0, len(p.Processors)+len(p.CustomProcessors))
	for _, key := range p.Processors {
		labels = append(labels, ProcessorLabel(key))
	}
	labels = append(labels, p.CustomProcessors...)
	return labels
}

// Detail returns the intake detail for a database kind, or a zero value
// when none was recorded.
func (p *Profile) Detail(kind string) DatabaseDetail {
	if p.DBDetails == nil {
		return DatabaseDetail{}
	}
	return p.DBDetails[kind]
}
