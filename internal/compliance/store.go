package compliance

import (
	"context"

	"github.com/google/uuid"

	"github.com/mydpo/mydpo/internal/db"
)

// RuleStore persists organization-defined custom rules.
type RuleStore struct {
	db *db.DB
}

// NewRuleStore creates a new custom rule store.
func NewRuleStore(database *db.DB) *RuleStore {
	return &RuleStore{db: database}
}

// Create inserts a custom rule.
func (s *RuleStore) Create(ctx context.Context, cr CustomRule) (*CustomRule, error) {
	if cr.ID == "" {
		cr.ID = "custom-" + uuid.NewString()[:8]
	}
	if cr.Priority == "" {
		cr.Priority = PriorityMedium
	}
	enabled := 0
	if cr.Enabled {
		enabled = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_rules (id, org_id, name, expr, title, description, legal_basis, priority, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cr.ID, cr.OrgID, cr.Name, cr.Expr, cr.Title, cr.Description, cr.LegalBasis,
		string(cr.Priority), enabled,
	)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// ListByOrg returns an organization's custom rules in creation order.
func (s *RuleStore) ListByOrg(ctx context.Context, orgID string) ([]CustomRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, name, expr, title, description, legal_basis, priority, enabled
		FROM custom_rules WHERE org_id = ? ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CustomRule
	for rows.Next() {
		var cr CustomRule
		var priority string
		var enabled int
		if err := rows.Scan(&cr.ID, &cr.OrgID, &cr.Name, &cr.Expr, &cr.Title,
			&cr.Description, &cr.LegalBasis, &priority, &enabled); err != nil {
			return nil, err
		}
		cr.Priority = Priority(priority)
		cr.Enabled = enabled != 0
		results = append(results, cr)
	}
	return results, rows.Err()
}

// SetEnabled toggles a custom rule.
func (s *RuleStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	_, err := s.db.ExecContext(ctx, `UPDATE custom_rules SET enabled = ? WHERE id = ?`, v, id)
	return err
}

// Delete removes a custom rule.
func (s *RuleStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM custom_rules WHERE id = ?`, id)
	return err
}
