package compliance

import "math"

// actionWeights approximate legal and operational severity: the core
// governance documents weigh more than administrative appointments.
var actionWeights = map[string]int{
	"dpo-appointed":          10,
	"dpo-letter-sign":        8,
	"privacy-policy":         10,
	"security-procedures":    10,
	"db-registration":        8,
	"ropa":                   8,
	"consent-form":           6,
	"consent-implementation": 5,
	"processor-agreements":   7,
	"access-control":         5,
	"camera-officer":         3,
	"cv-deletion":            4,
	"ciso-check":             3,
	"employee-training":      3,
	"reporting-obligation":   8,
	"open-incidents":         10,
}

// defaultWeight applies to ids missing from the table, such as
// organization-defined custom rules.
const defaultWeight = 3

// weightFor returns the scoring weight for an action id.
func weightFor(id string) int {
	if w, ok := actionWeights[id]; ok {
		return w
	}
	return defaultWeight
}

// Score reduces the action list to a 0-100 percentage. Resolved actions earn
// their full weight; pending_dpo actions whose document type already exists
// as a draft earn half, rewarding progress in the draft -> approve workflow
// without claiming completion.
func Score(actions []Action, c *Context) int {
	totalWeight := 0
	earnedWeight := 0.0

	for _, a := range actions {
		if a.Status == StatusNotApplicable {
			continue
		}
		w := weightFor(a.ID)
		totalWeight += w

		switch a.Status {
		case StatusAutoResolved, StatusCompleted:
			earnedWeight += float64(w)
		case StatusPendingDPO:
			if a.DocumentType != "" && c.hasDoc(a.DocumentType) {
				earnedWeight += float64(w) / 2
			}
		case StatusPendingUser:
			// Approved but awaiting an external step by the user, such as
			// publishing the policy on their website. Still half credit so
			// that approving a draft never lowers the score.
			if a.DocumentType != "" && c.hasActiveDoc(a.DocumentType) {
				earnedWeight += float64(w) / 2
			}
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(earnedWeight / float64(totalWeight) * 100))
}
