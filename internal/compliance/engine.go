// Package compliance derives an organization's compliance posture from its
// self-reported intake profile and current document and incident state.
//
// The derivation is a pure function: no I/O, no mutation of inputs, no
// clock or randomness. Callers own fetching the inputs and persisting or
// displaying the result; recomputing on every call keeps the summary
// honest against the current state.
package compliance

import (
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/profile"
)

// Derive runs the full pipeline: metric extraction, classification, the
// rule table, and scoring. Identical inputs always produce an identical
// summary.
func Derive(p *profile.Profile, docs []documents.Document, incs []incidents.Incident) Summary {
	return DeriveWithRules(p, docs, incs, nil)
}

// DeriveWithRules is Derive plus organization-defined extension rules,
// evaluated after the built-in table.
func DeriveWithRules(p *profile.Profile, docs []documents.Document, incs []incidents.Incident, extra []Rule) Summary {
	metrics := ExtractMetrics(p)
	classification := Classify(metrics)

	ctx := &Context{
		Profile:        p,
		Metrics:        metrics,
		Classification: classification,
		Documents:      docs,
		Incidents:      incs,
	}

	var actions []Action
	for _, rule := range builtinRules {
		if a := rule.Evaluate(ctx); a != nil {
			finalize(a)
			actions = append(actions, *a)
		}
	}
	for _, rule := range extra {
		if a := rule.Evaluate(ctx); a != nil {
			finalize(a)
			actions = append(actions, *a)
		}
	}

	reasons := classification.ReportingReasons
	if reasons == nil {
		reasons = []string{}
	}

	return Summary{
		Actions:          actions,
		Score:            Score(actions, ctx),
		SecurityLevel:    classification.SecurityLevel,
		SecurityLevelHe:  securityLevelHe[classification.SecurityLevel],
		TotalRecords:     metrics.TotalRecords,
		DBCount:          metrics.DBCount,
		NeedsReporting:   classification.NeedsReporting,
		ReportingReasons: reasons,
		NeedsCiso:        classification.NeedsCiso,
		CisoReason:       classification.CisoReason,
	}
}

// finalize fills the fields that are pure functions of id and status, so
// individual rules cannot get them wrong.
func finalize(a *Action) {
	a.Owner = ownerForStatus(a.Status)
	a.Category = categoryForStatus(a.ID, a.Status)
}
