package compliance

import (
	"fmt"
	"strings"

	"github.com/mydpo/mydpo/internal/documents"
)

// Rule is one independent, declarative compliance rule. Evaluate inspects
// the context and returns an action, or nil when the rule does not apply.
// Rules never depend on another rule's output; the slice order below is the
// order actions appear in the summary.
type Rule struct {
	ID       string
	Evaluate func(*Context) *Action
}

// builtinRules is the fixed rule table, in evaluation order.
var builtinRules = []Rule{
	{ID: "dpo-appointed", Evaluate: ruleDPOAppointed},
	{ID: "dpo-letter-sign", Evaluate: ruleDPOLetterSign},
	{ID: "privacy-policy", Evaluate: rulePrivacyPolicy},
	{ID: "security-procedures", Evaluate: ruleSecurityProcedures},
	{ID: "db-registration", Evaluate: ruleDBRegistration},
	{ID: "ropa", Evaluate: ruleROPA},
	{ID: "consent-form", Evaluate: ruleConsentForm},
	{ID: "consent-implementation", Evaluate: ruleConsentImplementation},
	{ID: "processor-agreements", Evaluate: ruleProcessorAgreements},
	{ID: "access-control", Evaluate: ruleAccessControl},
	{ID: "camera-officer", Evaluate: ruleCameraOfficer},
	{ID: "cv-deletion", Evaluate: ruleCVDeletion},
	{ID: "ciso-check", Evaluate: ruleCisoCheck},
	{ID: "employee-training", Evaluate: ruleEmployeeTraining},
	{ID: "reporting-obligation", Evaluate: ruleReportingObligation},
	{ID: "open-incidents", Evaluate: ruleOpenIncidents},
}

// ownerForStatus maps an action status to who must act next.
func ownerForStatus(status Status) Owner {
	switch status {
	case StatusPendingUser:
		return OwnerUser
	case StatusPendingDPO:
		return OwnerDPO
	default:
		return OwnerSystem
	}
}

// categoryForStatus maps a status to its UI bucket. The reporting-obligation
// action is the one exception: it sits in its own bucket despite being a
// pending_user action.
func categoryForStatus(id string, status Status) Category {
	if id == "reporting-obligation" {
		return CategoryReporting
	}
	switch status {
	case StatusAutoResolved, StatusCompleted:
		return CategoryDone
	case StatusPendingUser:
		return CategoryUserAction
	case StatusPendingDPO:
		return CategoryDPOPending
	default:
		return CategoryDone
	}
}

func ruleDPOAppointed(*Context) *Action {
	return &Action{
		ID:           "dpo-appointed",
		Title:        "Appoint a data protection officer",
		Description:  "A certified DPO was assigned to your organization when you signed up.",
		LegalBasis:   "Protection of Privacy Law, sec. 17B1 (Amendment 13)",
		Status:       StatusAutoResolved,
		Priority:     PriorityMedium,
		ResolvedNote: "Handled by the platform: your DPO is already on file.",
	}
}

func ruleDPOLetterSign(c *Context) *Action {
	a := &Action{
		ID:               "dpo-letter-sign",
		Title:            "Sign the DPO appointment letter",
		Description:      "The appointment letter formalizes your DPO's mandate and must be signed by management.",
		LegalBasis:       "Protection of Privacy Law, sec. 17B1 (Amendment 13)",
		Priority:         PriorityHigh,
		DocumentType:     documents.TypeDPOAppointment,
		ActionPath:       "/documents/dpo-appointment",
		EstimatedMinutes: 5,
	}
	switch {
	case c.hasActiveDoc(documents.TypeDPOAppointment):
		a.Status = StatusCompleted
	case c.hasDoc(documents.TypeDPOAppointment):
		a.Status = StatusPendingUser
		a.Description = "Your DPO appointment letter is drafted. Sign it to complete the appointment."
	default:
		a.Status = StatusPendingDPO
	}
	return a
}

func rulePrivacyPolicy(c *Context) *Action {
	a := &Action{
		ID:               "privacy-policy",
		Title:            "Publish a privacy policy",
		Description:      "A privacy policy telling data subjects what you collect and why.",
		LegalBasis:       "Protection of Privacy Law, sec. 11",
		Priority:         PriorityHigh,
		DocumentType:     documents.TypePrivacyPolicy,
		ActionPath:       "/documents/privacy-policy",
		EstimatedMinutes: 15,
	}
	if c.hasActiveDoc(documents.TypePrivacyPolicy) {
		// Approved by the DPO; the user still has to publish it on their site.
		a.Status = StatusPendingUser
		a.Description = "Your privacy policy is approved. Publish it on your website and collection forms."
	} else {
		a.Status = StatusPendingDPO
	}
	return a
}

func ruleSecurityProcedures(c *Context) *Action {
	a := &Action{
		ID:               "security-procedures",
		Title:            "Adopt a data security procedure",
		Description:      "A written security procedure covering access, backups, and incident response.",
		LegalBasis:       "Privacy Protection Regulations (Data Security), 5777-2017, reg. 4",
		Priority:         PriorityHigh,
		DocumentType:     documents.TypeSecurityProcedures,
		ActionPath:       "/documents/security-procedures",
		EstimatedMinutes: 20,
	}
	if c.hasActiveDoc(documents.TypeSecurityProcedures, documents.TypeSecurityPolicy) {
		a.Status = StatusPendingUser
		a.Description = "Your security procedure is approved. Circulate it to every employee with data access."
	} else {
		a.Status = StatusPendingDPO
	}
	return a
}

func ruleDBRegistration(c *Context) *Action {
	a := &Action{
		ID:           "db-registration",
		Title:        "Prepare database definitions",
		Description:  fmt.Sprintf("A definitions document for each of your %d declared databases.", c.Metrics.DBCount),
		LegalBasis:   "Protection of Privacy Law, sec. 8",
		Priority:     PriorityMedium,
		DocumentType: documents.TypeDatabaseRegistration,
		ActionPath:   "/documents/database-registration",
	}
	if c.hasActiveDoc(documents.TypeDatabaseRegistration, documents.TypeDatabaseDefinition) {
		a.Status = StatusCompleted
	} else {
		a.Status = StatusPendingDPO
	}
	return a
}

func ruleROPA(c *Context) *Action {
	a := &Action{
		ID:           "ropa",
		Title:        "Maintain a record of processing activities",
		Description:  "A ROPA mapping what personal data you process, where, and on what legal basis.",
		LegalBasis:   "Privacy Protection Regulations (Data Security), 5777-2017, reg. 2",
		Priority:     PriorityMedium,
		DocumentType: documents.TypeROPA,
		ActionPath:   "/documents/ropa",
	}
	if c.hasActiveDoc(documents.TypeROPA) {
		a.Status = StatusCompleted
	} else {
		a.Status = StatusPendingDPO
	}
	return a
}

func ruleConsentForm(c *Context) *Action {
	a := &Action{
		ID:           "consent-form",
		Title:        "Prepare a consent form",
		Description:  "A consent text for your data collection channels.",
		LegalBasis:   "Protection of Privacy Law, secs. 1, 11",
		Priority:     PriorityMedium,
		DocumentType: documents.TypeConsentForm,
		ActionPath:   "/documents/consent-form",
	}
	if c.hasActiveDoc(documents.TypeConsentForm) {
		a.Status = StatusCompleted
	} else {
		a.Status = StatusPendingDPO
	}
	return a
}

func ruleConsentImplementation(c *Context) *Action {
	if c.Profile == nil || c.Profile.ConsentStatus != "no" || !c.Metrics.HasWebsiteLeads {
		return nil
	}
	return &Action{
		ID:               "consent-implementation",
		Title:            "Add consent to your lead forms",
		Description:      "Your website collects leads without explicit consent. Add a consent checkbox and link to your privacy policy.",
		LegalBasis:       "Protection of Privacy Law, sec. 11",
		Status:           StatusPendingUser,
		Priority:         PriorityHigh,
		ActionPath:       "/guide/consent-implementation",
		EstimatedMinutes: 30,
	}
}

func ruleProcessorAgreements(c *Context) *Action {
	if c.Profile == nil {
		return nil
	}
	labels := c.Profile.ProcessorLabels()
	if len(labels) == 0 {
		return nil
	}
	return &Action{
		ID:               "processor-agreements",
		Title:            "Sign data processing agreements",
		Description:      fmt.Sprintf("You share personal data with %d external processors (%s). Each needs a signed DPA.", len(labels), strings.Join(labels, ", ")),
		LegalBasis:       "Privacy Protection Regulations (Data Security), 5777-2017, reg. 15",
		Status:           StatusPendingUser,
		Priority:         PriorityMedium,
		DocumentType:     documents.TypeDPA,
		ActionPath:       "/documents/dpa",
		EstimatedMinutes: 15 * len(labels),
	}
}

func ruleAccessControl(c *Context) *Action {
	if c.Profile == nil || c.Profile.AccessControl != "all" {
		return nil
	}
	return &Action{
		ID:               "access-control",
		Title:            "Restrict access to personal data",
		Description:      "Everyone in your organization currently sees everything. Limit access to those who need it for their role.",
		LegalBasis:       "Privacy Protection Regulations (Data Security), 5777-2017, reg. 8",
		Status:           StatusPendingUser,
		Priority:         PriorityHigh,
		ActionPath:       "/guide/access-control",
		EstimatedMinutes: 60,
	}
}

func ruleCameraOfficer(c *Context) *Action {
	if !c.Metrics.HasCameras {
		return nil
	}
	if c.Profile != nil && c.Profile.CameraOwner != "" {
		return nil
	}
	return &Action{
		ID:               "camera-officer",
		Title:            "Designate a camera footage officer",
		Description:      "You operate security cameras but no one is recorded as responsible for the footage.",
		LegalBasis:       "Registrar of Databases guideline 4/2012 (camera surveillance)",
		Status:           StatusPendingUser,
		Priority:         PriorityMedium,
		ActionPath:       "/profile/cameras",
		EstimatedMinutes: 10,
	}
}

func ruleCVDeletion(c *Context) *Action {
	if !c.Metrics.HasCVs {
		return nil
	}
	retention := ""
	if c.Profile != nil {
		retention = c.Profile.Detail("cvs").Retention
	}
	if retention == "quarterly" || retention == "policy" {
		return nil
	}
	return &Action{
		ID:               "cv-deletion",
		Title:            "Set a CV retention routine",
		Description:      "Applicant CVs are kept indefinitely. Adopt a quarterly deletion routine for candidates you did not hire.",
		LegalBasis:       "Protection of Privacy Law, sec. 14; data minimization",
		Status:           StatusPendingUser,
		Priority:         PriorityHigh,
		ActionPath:       "/guide/cv-retention",
		EstimatedMinutes: 20,
	}
}

func ruleCisoCheck(c *Context) *Action {
	if !c.Classification.NeedsCiso {
		return nil
	}
	a := &Action{
		ID:          "ciso-check",
		Title:       "Appoint an information security officer",
		Description: c.Classification.CisoReason,
		LegalBasis:  "Privacy Protection Regulations (Data Security), 5777-2017, reg. 3",
		Priority:    PriorityMedium,
		ActionPath:  "/profile/security-owner",
	}
	if c.Profile != nil && c.Profile.SecurityOwner != "" && c.Profile.SecurityOwner != "none" {
		a.Status = StatusCompleted
	} else {
		a.Status = StatusPendingUser
	}
	return a
}

func ruleEmployeeTraining(c *Context) *Action {
	if c.Metrics.MaxAccess <= 10 {
		return nil
	}
	return &Action{
		ID:               "employee-training",
		Title:            "Run privacy training for employees",
		Description:      "More than ten people access personal data in your systems. Annual awareness training is expected.",
		LegalBasis:       "Privacy Protection Regulations (Data Security), 5777-2017, reg. 7",
		Status:           StatusPendingUser,
		Priority:         PriorityLow,
		ActionPath:       "/guide/training",
		EstimatedMinutes: 45,
	}
}

func ruleReportingObligation(c *Context) *Action {
	if !c.Classification.NeedsReporting {
		return nil
	}
	return &Action{
		ID:          "reporting-obligation",
		Title:       "Register your databases with the Registrar",
		Description: "Your organization must register with the Database Registrar: " + strings.Join(c.Classification.ReportingReasons, "; "),
		LegalBasis:  "Protection of Privacy Law, sec. 8; Data Security Regulations, reg. 5",
		Status:      StatusPendingUser,
		Priority:    PriorityCritical,
		ActionPath:  "/guide/registration",
	}
}

func ruleOpenIncidents(c *Context) *Action {
	open := c.openIncidentCount()
	if open == 0 {
		return nil
	}
	return &Action{
		ID:          "open-incidents",
		Title:       "Handle open security incidents",
		Description: fmt.Sprintf("You have %d unresolved security incidents. Investigate and close them.", open),
		LegalBasis:  "Privacy Protection Regulations (Data Security), 5777-2017, reg. 11",
		Status:      StatusPendingUser,
		Priority:    PriorityCritical,
		ActionPath:  "/incidents",
	}
}
