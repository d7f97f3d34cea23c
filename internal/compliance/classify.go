package compliance

import "fmt"

// Classification thresholds from the Data Security Regulations, 5777-2017.
const (
	highRecordThreshold   = 100000
	mediumRecordThreshold = 10000
	mediumDBCountThreshold = 5
	highAccessThreshold   = 100
	cisoAccessThreshold   = 50
)

const cisoReasonText = "Your organization processes sensitive data with broad internal access; appointing a dedicated information security officer is advisable."

// Classify derives the qualitative risk posture from the metrics bundle.
// It is a pure function of the metrics and is re-derivable independently
// of the rule table.
func Classify(m Metrics) Classification {
	var c Classification

	switch {
	case m.TotalRecords >= highRecordThreshold || m.HasMedical || m.SensitiveIndustry || m.MaxAccess >= highAccessThreshold:
		c.SecurityLevel = SecurityHigh
	case m.TotalRecords >= mediumRecordThreshold || m.DBCount >= mediumDBCountThreshold:
		c.SecurityLevel = SecurityMedium
	default:
		c.SecurityLevel = SecurityBasic
	}

	// Reasons are appended only for conditions that actually hold, in a
	// fixed order: security level, record volume, medical plus volume.
	if c.SecurityLevel == SecurityHigh {
		c.NeedsReporting = true
		c.ReportingReasons = append(c.ReportingReasons,
			"Your databases are classified at the high security level")
	}
	if m.TotalRecords >= highRecordThreshold {
		c.NeedsReporting = true
		c.ReportingReasons = append(c.ReportingReasons,
			fmt.Sprintf("You hold roughly %d personal records, above the 100,000 registration threshold", m.TotalRecords))
	}
	if m.HasMedical && m.TotalRecords >= mediumRecordThreshold {
		c.NeedsReporting = true
		c.ReportingReasons = append(c.ReportingReasons,
			"You hold medical data on more than 10,000 subjects")
	}

	if m.HasSensitiveData && m.MaxAccess >= cisoAccessThreshold {
		c.NeedsCiso = true
		c.CisoReason = cisoReasonText
	}

	return c
}
