package compliance

import (
	"testing"

	"github.com/mydpo/mydpo/internal/profile"
)

func TestCustomRuleFires(t *testing.T) {
	engine, err := NewCustomEngine()
	if err != nil {
		t.Fatalf("NewCustomEngine: %v", err)
	}

	rules := engine.Compile([]CustomRule{{
		ID:      "custom-vendor-review",
		Name:    "annual vendor review",
		Expr:    `input.total_records > 1000 && input.db_count >= 2`,
		Title:   "Run the annual vendor review",
		Enabled: true,
	}})
	if len(rules) != 1 {
		t.Fatalf("compiled %d rules, want 1", len(rules))
	}

	p := &profile.Profile{
		Databases: []string{profile.DBCustomers, profile.DBEmployees},
		DBDetails: map[string]profile.DatabaseDetail{
			profile.DBCustomers: {Size: "1k-10k"},
		},
	}
	s := DeriveWithRules(p, nil, nil, rules)

	a := findAction(t, s, "custom-vendor-review")
	if a == nil {
		t.Fatal("custom rule did not fire")
	}
	if a.Status != StatusPendingUser {
		t.Errorf("status = %s, want pending_user", a.Status)
	}
	if a.Priority != PriorityMedium {
		t.Errorf("priority = %s, want medium default", a.Priority)
	}
	if a.Category != CategoryUserAction {
		t.Errorf("category = %s, want user_action", a.Category)
	}
}

func TestCustomRuleNotMatching(t *testing.T) {
	engine, _ := NewCustomEngine()
	rules := engine.Compile([]CustomRule{{
		ID:      "custom-never",
		Expr:    `input.total_records > 1000000`,
		Title:   "unreachable",
		Enabled: true,
	}})

	s := DeriveWithRules(minimalProfile(), nil, nil, rules)
	if findAction(t, s, "custom-never") != nil {
		t.Error("custom rule fired despite false condition")
	}
}

func TestCustomRuleDisabledOrBroken(t *testing.T) {
	engine, _ := NewCustomEngine()
	rules := engine.Compile([]CustomRule{
		{ID: "custom-off", Expr: `true`, Title: "off", Enabled: false},
		{ID: "custom-bad", Expr: `input.total_records +`, Title: "bad", Enabled: true},
	})
	if len(rules) != 0 {
		t.Errorf("compiled %d rules, want 0 (disabled and broken rules are skipped)", len(rules))
	}
}

func TestCustomEngineValidate(t *testing.T) {
	engine, _ := NewCustomEngine()

	if err := engine.Validate(`input.has_medical && input.max_access > 10`); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	if err := engine.Validate(`input.total_records +`); err == nil {
		t.Error("syntax error accepted")
	}
	if err := engine.Validate(`input.total_records`); err == nil {
		t.Error("non-boolean expression accepted")
	}
}
