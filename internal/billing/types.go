package billing

import "time"

// Plan is a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// planRank orders plans for feature gating.
var planRank = map[Plan]int{
	PlanFree:    0,
	PlanStarter: 1,
	PlanPro:     2,
}

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	_, ok := planRank[p]
	return ok
}

// AtLeast reports whether p grants everything min does.
func (p Plan) AtLeast(min Plan) bool {
	return planRank[p] >= planRank[min]
}

// SubStatus is the payment standing of a subscription.
type SubStatus string

const (
	SubActive   SubStatus = "active"
	SubPastDue  SubStatus = "past_due"
	SubCanceled SubStatus = "canceled"
)

// Subscription is an organization's current plan and payment standing.
type Subscription struct {
	OrgID       string     `json:"org_id"`
	Plan        Plan       `json:"plan"`
	Status      SubStatus  `json:"status"`
	ExternalRef string     `json:"external_ref,omitempty"`
	RenewsAt    *time.Time `json:"renews_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Effective returns the plan an org actually gets: a canceled or past-due
// subscription falls back to the free tier.
func (s *Subscription) Effective() Plan {
	if s == nil || s.Status != SubActive {
		return PlanFree
	}
	return s.Plan
}
