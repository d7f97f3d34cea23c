package knowledge

import "context"

// builtinArticles is the bundled guidance corpus covering the Protection of
// Privacy Law as amended by Amendment 13 and the Data Security Regulations.
var builtinArticles = []Article{
	{
		ID:     "dpo-duty",
		Title:  "When a privacy protection officer must be appointed",
		Topic:  TopicDPO,
		Source: "Protection of Privacy Law, s. 17B1 (Amendment 13)",
		Content: "A privacy protection officer must be appointed by public bodies, data brokers, " +
			"and organizations whose core activity involves processing sensitive personal data at scale. " +
			"The officer reports directly to management, must be given the resources to perform the role, " +
			"and may not hold a conflicting position. The appointment must be documented in writing and " +
			"the officer's contact details published to data subjects.",
	},
	{
		ID:     "dpo-tasks",
		Title:  "Duties of the privacy protection officer",
		Topic:  TopicDPO,
		Source: "Protection of Privacy Law, s. 17B2",
		Content: "The officer prepares an organizational compliance plan, trains employees, monitors " +
			"adherence to the law and the Data Security Regulations, and serves as the contact point for " +
			"the Privacy Protection Authority and for data subjects exercising their rights.",
	},
	{
		ID:     "registration-duty",
		Title:  "Database registration and notification duties",
		Topic:  TopicRegistration,
		Source: "Protection of Privacy Law, s. 8 (as amended)",
		Content: "Following Amendment 13, mandatory registration applies mainly to databases of public " +
			"bodies and data brokers. Other controllers of large sensitive databases must instead notify " +
			"the Privacy Protection Authority of defined particulars. Every controller must maintain " +
			"database definitions documenting purposes, data categories, and transfer recipients.",
	},
	{
		ID:     "security-levels",
		Title:  "Security levels under the Data Security Regulations",
		Topic:  TopicSecurity,
		Source: "Protection of Privacy Regulations (Data Security), 2017",
		Content: "Databases are classified into basic, medium, and high security levels. High security " +
			"applies to databases with sensitive data about many data subjects or wide internal access, " +
			"including medical, biometric, and financial data. The level dictates required controls: " +
			"access management, encryption, audit logging, penetration testing, and annual reviews.",
	},
	{
		ID:     "security-document",
		Title:  "The database security procedure document",
		Topic:  TopicSecurity,
		Source: "Data Security Regulations, reg. 4",
		Content: "Every database requires a written security procedure covering physical and logical " +
			"access, acceptable use, incident handling, and the duties of authorized personnel. Medium " +
			"and high level databases must review the procedure annually and after every material change.",
	},
	{
		ID:     "ciso-duty",
		Title:  "When an information security officer is required",
		Topic:  TopicSecurity,
		Source: "Protection of Privacy Law, s. 17B",
		Content: "An information security officer must be appointed by banks, insurers, public bodies, " +
			"and controllers of five or more databases requiring registration, as well as organizations " +
			"whose databases are subject to the high security level with broad internal access.",
	},
	{
		ID:     "consent-basis",
		Title:  "Consent and lawful basis for processing",
		Topic:  TopicConsent,
		Source: "Protection of Privacy Law, ss. 1, 8",
		Content: "Processing personal data requires informed consent or another statutory basis. The " +
			"notice accompanying a request for data must state whether a legal duty to provide it exists, " +
			"the purpose of processing, and to whom data will be transferred. Consent collected for one " +
			"purpose does not cover materially different purposes.",
	},
	{
		ID:     "breach-notification",
		Title:  "Security incident reporting duties",
		Topic:  TopicIncidents,
		Source: "Data Security Regulations, reg. 11; Amendment 13 enforcement chapter",
		Content: "A severe security incident in a medium or high level database must be reported to the " +
			"Privacy Protection Authority without delay. The Authority may instruct the controller to " +
			"notify affected data subjects. Incident records, including scope, cause, and remediation, " +
			"must be documented and retained.",
	},
	{
		ID:     "access-right",
		Title:  "Right of access and correction",
		Topic:  TopicRights,
		Source: "Protection of Privacy Law, ss. 13-14",
		Content: "Every person may inspect data held about them and request correction or deletion of " +
			"inaccurate data. The controller must answer an access request within 30 days and a refusal " +
			"must cite a statutory ground. Correction requests that are declined may be appealed to court.",
	},
	{
		ID:     "enforcement-powers",
		Title:  "Administrative enforcement after Amendment 13",
		Topic:  TopicEnforcement,
		Source: "Protection of Privacy Law, enforcement chapter (Amendment 13)",
		Content: "Amendment 13 grants the Privacy Protection Authority power to impose significant " +
			"administrative fines scaled to the violation and the number of affected data subjects, to " +
			"issue binding instructions, and to order processing stopped. Repeat violations and failure " +
			"to appoint required officers are aggravating factors.",
	},
	{
		ID:     "cctv-guidance",
		Title:  "Camera surveillance in the workplace",
		Topic:  TopicSecurity,
		Source: "Privacy Protection Authority guidance 4/2012 and 5/2017",
		Content: "Workplace camera surveillance requires a defined purpose, signage, proportionate " +
			"placement, a named responsible person, and retention limits. Continuous covert monitoring " +
			"of employees is prohibited absent exceptional justification.",
	},
	{
		ID:     "retention-minimization",
		Title:  "Retention limits and data minimization",
		Topic:  TopicRights,
		Source: "Data Security Regulations, reg. 2(c); Authority guidance",
		Content: "Controllers must not keep personal data beyond the period needed for the processing " +
			"purpose. Recruitment records such as CVs of rejected candidates should be deleted on a " +
			"fixed schedule unless the candidate agreed to retention for future openings.",
	},
}

// Seed indexes the bundled guidance corpus.
func (s *Store) Seed(ctx context.Context) error {
	return s.Add(ctx, builtinArticles)
}

// BuiltinCount reports how many bundled articles Seed indexes.
func BuiltinCount() int {
	return len(builtinArticles)
}
