package compliance

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// CustomRule is an organization-defined extension rule: a CEL boolean
// expression over the derived metrics that, when true, adds an extra
// pending_user action to the summary. Custom rules never change the
// built-in table and score with the default weight.
type CustomRule struct {
	ID          string   `json:"id"`
	OrgID       string   `json:"org_id"`
	Name        string   `json:"name"`
	Expr        string   `json:"expr"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	LegalBasis  string   `json:"legal_basis,omitempty"`
	Priority    Priority `json:"priority"`
	Enabled     bool     `json:"enabled"`
}

// CustomEngine compiles and evaluates custom rule expressions.
type CustomEngine struct {
	env *cel.Env
}

// NewCustomEngine creates a CEL environment exposing the derivation input
// as a single `input` map variable.
func NewCustomEngine() (*CustomEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}
	return &CustomEngine{env: env}, nil
}

// Validate compiles an expression and checks that it yields a boolean.
func (e *CustomEngine) Validate(expr string) error {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("expression must return a boolean, got %s", ast.OutputType())
	}
	return nil
}

// Compile turns stored custom rules into engine rules. Rules that fail to
// compile or evaluate are skipped: a broken custom rule must not take down
// the compliance dashboard.
func (e *CustomEngine) Compile(rules []CustomRule) []Rule {
	var out []Rule
	for _, cr := range rules {
		if !cr.Enabled {
			continue
		}
		cr := cr

		ast, issues := e.env.Compile(cr.Expr)
		if issues != nil && issues.Err() != nil {
			continue
		}
		prg, err := e.env.Program(ast)
		if err != nil {
			continue
		}

		out = append(out, Rule{
			ID: cr.ID,
			Evaluate: func(c *Context) *Action {
				val, _, err := prg.Eval(map[string]interface{}{
					"input": contextToMap(c),
				})
				if err != nil {
					return nil
				}
				matched, ok := val.Value().(bool)
				if !ok || !matched {
					return nil
				}
				priority := cr.Priority
				if priority == "" {
					priority = PriorityMedium
				}
				return &Action{
					ID:          cr.ID,
					Title:       cr.Title,
					Description: cr.Description,
					LegalBasis:  cr.LegalBasis,
					Status:      StatusPendingUser,
					Priority:    priority,
				}
			},
		})
	}
	return out
}

// contextToMap converts the derivation context into the CEL input map.
func contextToMap(c *Context) map[string]interface{} {
	input := map[string]interface{}{
		"total_records":      c.Metrics.TotalRecords,
		"max_access":         c.Metrics.MaxAccess,
		"db_count":           c.Metrics.DBCount,
		"has_medical":        c.Metrics.HasMedical,
		"has_cameras":        c.Metrics.HasCameras,
		"has_cvs":            c.Metrics.HasCVs,
		"has_website_leads":  c.Metrics.HasWebsiteLeads,
		"sensitive_industry": c.Metrics.SensitiveIndustry,
		"has_sensitive_data": c.Metrics.HasSensitiveData,
		"security_level":     string(c.Classification.SecurityLevel),
		"needs_reporting":    c.Classification.NeedsReporting,
		"needs_ciso":         c.Classification.NeedsCiso,
		"open_incidents":     c.openIncidentCount(),
	}
	if c.Profile != nil {
		input["industry"] = c.Profile.Industry
		input["consent_status"] = c.Profile.ConsentStatus
		input["access_control"] = c.Profile.AccessControl
	}
	return input
}
