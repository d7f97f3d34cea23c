package docgen

import (
	"github.com/mydpo/mydpo/internal/documents"
)

// docTitles maps document types to their generated titles.
var docTitles = map[documents.Type]string{
	documents.TypeDPOAppointment:       "Privacy Protection Officer Appointment Letter",
	documents.TypePrivacyPolicy:        "Privacy Policy",
	documents.TypeSecurityProcedures:   "Database Security Procedures",
	documents.TypeDatabaseRegistration: "Database Registration Statement",
	documents.TypeROPA:                 "Record of Processing Activities",
	documents.TypeConsentForm:          "Data Collection Consent Notice",
	documents.TypeDPA:                  "Data Processing Agreement",
}

// Title returns the generated title for a document type.
func Title(t documents.Type) string {
	if title, ok := docTitles[t]; ok {
		return title
	}
	return string(t)
}

// docTemplates holds the markdown skeleton per document type. Each template
// receives templateData.
var docTemplates = map[documents.Type]string{
	documents.TypeDPOAppointment: `# {{.Title}}

**Organization:** {{.Org.Name}}

In accordance with section 17B1 of the Protection of Privacy Law, 5741-1981, as amended by
Amendment 13, {{.Org.Name}} hereby appoints a Privacy Protection Officer.

## Scope of the role

The officer shall:

1. Prepare and maintain the organizational privacy compliance plan.
2. Train employees handling personal data.
3. Monitor compliance with the Law and the Data Security Regulations.
4. Serve as the contact point for the Privacy Protection Authority and for data subjects.

The officer reports directly to management and shall be provided the resources required to
perform the role. The officer shall not hold any position creating a conflict of interest.

## Databases in scope
{{range .Databases}}
- {{.}}{{end}}

Signed: ________________________ Date: ____________
`,

	documents.TypePrivacyPolicy: `# {{.Title}}

## Who we are

{{.Org.Name}}{{if .Org.Industry}} operates in the {{.Org.Industry}} sector and{{end}} collects
and processes personal data as described in this policy, in accordance with the Protection of
Privacy Law, 5741-1981.

## What data we collect

We maintain the following categories of personal data:
{{range .Databases}}
- {{.}}{{end}}

## Third parties processing data on our behalf
{{if .Processors}}{{range .Processors}}
- {{.}}{{end}}{{else}}
We do not currently share personal data with external processors.{{end}}

## Your rights

You may inspect the data we hold about you and request correction or deletion of inaccurate
data (sections 13-14 of the Law). Requests are answered within 30 days. To exercise your
rights, contact us{{if .Org.ContactEmail}} at {{.Org.ContactEmail}}{{end}}.

## Data security

We apply the controls required by the Protection of Privacy Regulations (Data Security),
2017, at the security level applicable to our databases.
`,

	documents.TypeSecurityProcedures: `# {{.Title}}

**Organization:** {{.Org.Name}}

This procedure implements regulation 4 of the Protection of Privacy Regulations
(Data Security), 2017 for the databases listed below.

## Databases covered
{{range .Databases}}
- {{.}}{{end}}

## Access management

Access to personal data is granted per role on a need-to-know basis.
{{if .OpenAccess}}**Finding:** access is currently unrestricted. Role-based permissions must
be defined and enforced before this procedure can be approved.{{else}}Permissions are reviewed
when an employee joins, changes role, or leaves.{{end}}

## Incident handling

Suspected security incidents are reported immediately to the security owner, documented,
and assessed for the reporting duty under regulation 11.

## Review

This procedure is reviewed annually and after every material change to the systems it covers.
`,

	documents.TypeDatabaseRegistration: `# {{.Title}}

**Organization:** {{.Org.Name}}

Particulars of the organization's databases for registration or notification to the
Privacy Protection Authority under section 8 of the Protection of Privacy Law.

## Databases
{{range .DatabaseRows}}
### {{.Name}}

- Approximate size: {{if .Size}}{{.Size}}{{else}}not recorded{{end}}
- Authorized personnel: {{if .Access}}{{.Access}}{{else}}not recorded{{end}}
- Retention: {{if .Retention}}{{.Retention}}{{else}}not recorded{{end}}
{{end}}
`,

	documents.TypeROPA: `# {{.Title}}

**Organization:** {{.Org.Name}}

## Processing activities
{{range .DatabaseRows}}
### {{.Name}}

| Attribute | Value |
|---|---|
| Data categories | {{if .Fields}}{{.Fields}}{{else}}not recorded{{end}} |
| Approximate size | {{if .Size}}{{.Size}}{{else}}not recorded{{end}} |
| Internal access | {{if .Access}}{{.Access}}{{else}}not recorded{{end}} |
| Retention | {{if .Retention}}{{.Retention}}{{else}}not recorded{{end}} |
{{end}}
## External processors
{{if .Processors}}{{range .Processors}}
- {{.}}{{end}}{{else}}
None declared.{{end}}
`,

	documents.TypeConsentForm: `# {{.Title}}

**Organization:** {{.Org.Name}}

In accordance with section 11 of the Protection of Privacy Law, you are hereby informed:

1. There is no legal duty to provide the requested data; providing it depends on your consent.
2. The data is collected for the purposes described in our privacy policy.
3. The data may be shared with the processors listed in our privacy policy.

I consent to the collection and processing of my personal data as described above.

Name: ____________ Signature: ____________ Date: ____________
`,

	documents.TypeDPA: `# {{.Title}}

Between **{{.Org.Name}}** (the "Controller") and ____________ (the "Processor").

1. The Processor shall process personal data only on the Controller's documented instructions.
2. The Processor shall apply the security controls required by the Protection of Privacy
   Regulations (Data Security), 2017 at the level applicable to the data.
3. The Processor shall notify the Controller of any security incident without delay.
4. Upon termination, the Processor shall return or delete the personal data as instructed.
5. The Processor shall not engage a sub-processor without the Controller's prior approval.

Signed for the Controller: ____________ Signed for the Processor: ____________
`,
}
