package compliance

import (
	"testing"

	"github.com/mydpo/mydpo/internal/profile"
)

func TestSizeBracketLookup(t *testing.T) {
	tests := []struct {
		bracket string
		want    int
	}{
		{"under100", 50},
		{"100-1k", 500},
		{"1k-10k", 5000},
		{"10k-100k", 50000},
		{"100k+", 150000},
		{"", 50},
		{"not-a-bracket", 50},
	}
	for _, tt := range tests {
		if got := recordsForBracket(tt.bracket); got != tt.want {
			t.Errorf("recordsForBracket(%q) = %d, want %d", tt.bracket, got, tt.want)
		}
	}
}

func TestAccessBracketLookup(t *testing.T) {
	tests := []struct {
		bracket string
		want    int
	}{
		{"1-2", 2},
		{"3-10", 10},
		{"11-50", 50},
		{"50-100", 100},
		{"100+", 150},
		{"", 0},
		{"everyone", 0},
	}
	for _, tt := range tests {
		if got := accessForBracket(tt.bracket); got != tt.want {
			t.Errorf("accessForBracket(%q) = %d, want %d", tt.bracket, got, tt.want)
		}
	}
}

func TestExtractMetricsSumsAndMax(t *testing.T) {
	p := &profile.Profile{
		Databases:       []string{profile.DBCustomers, profile.DBEmployees},
		CustomDatabases: []string{"loyalty club"},
		DBDetails: map[string]profile.DatabaseDetail{
			profile.DBCustomers: {Size: "1k-10k", Access: "3-10"},
			profile.DBEmployees: {Size: "100-1k", Access: "50-100"},
			// loyalty club has no detail: defaults apply.
		},
	}
	m := ExtractMetrics(p)

	if m.DBCount != 3 {
		t.Errorf("DBCount = %d, want 3", m.DBCount)
	}
	if want := 5000 + 500 + 50; m.TotalRecords != want {
		t.Errorf("TotalRecords = %d, want %d", m.TotalRecords, want)
	}
	if m.MaxAccess != 100 {
		t.Errorf("MaxAccess = %d, want 100", m.MaxAccess)
	}
}

func TestExtractMetricsMissingAccessDoesNotSuppressMax(t *testing.T) {
	// A database with no declared access tier must not pull the maximum
	// down below a tier declared on another database.
	p := &profile.Profile{
		Databases: []string{profile.DBCustomers, profile.DBSuppliers},
		DBDetails: map[string]profile.DatabaseDetail{
			profile.DBCustomers: {Access: "11-50"},
		},
	}
	m := ExtractMetrics(p)
	if m.MaxAccess != 50 {
		t.Errorf("MaxAccess = %d, want 50", m.MaxAccess)
	}
}

func TestExtractMetricsFlags(t *testing.T) {
	tests := []struct {
		name     string
		p        profile.Profile
		medical  bool
		industry bool
		sensitive bool
	}{
		{
			name:      "medical database",
			p:         profile.Profile{Databases: []string{profile.DBMedical}},
			medical:   true,
			sensitive: true,
		},
		{
			name:      "health industry",
			p:         profile.Profile{Industry: "health"},
			industry:  true,
			sensitive: true,
		},
		{
			name:      "finance industry",
			p:         profile.Profile{Industry: "finance"},
			industry:  true,
			sensitive: true,
		},
		{
			name: "neither",
			p:    profile.Profile{Databases: []string{profile.DBCustomers}, Industry: "retail"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ExtractMetrics(&tt.p)
			if m.HasMedical != tt.medical {
				t.Errorf("HasMedical = %v, want %v", m.HasMedical, tt.medical)
			}
			if m.SensitiveIndustry != tt.industry {
				t.Errorf("SensitiveIndustry = %v, want %v", m.SensitiveIndustry, tt.industry)
			}
			if m.HasSensitiveData != tt.sensitive {
				t.Errorf("HasSensitiveData = %v, want %v", m.HasSensitiveData, tt.sensitive)
			}
		})
	}
}

func TestExtractMetricsNilProfile(t *testing.T) {
	m := ExtractMetrics(nil)
	if m.DBCount != 0 || m.TotalRecords != 0 || m.MaxAccess != 0 {
		t.Errorf("nil profile gave non-zero metrics: %+v", m)
	}
}

func TestClassifyLevels(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want SecurityLevel
	}{
		{"empty", Metrics{}, SecurityBasic},
		{"volume high", Metrics{TotalRecords: 100000}, SecurityHigh},
		{"medical high", Metrics{HasMedical: true}, SecurityHigh},
		{"industry high", Metrics{SensitiveIndustry: true}, SecurityHigh},
		{"access high", Metrics{MaxAccess: 100}, SecurityHigh},
		{"volume medium", Metrics{TotalRecords: 10000}, SecurityMedium},
		{"db count medium", Metrics{DBCount: 5}, SecurityMedium},
		{"just below medium", Metrics{TotalRecords: 9999, DBCount: 4}, SecurityBasic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.m).SecurityLevel; got != tt.want {
				t.Errorf("SecurityLevel = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyReportingReasonOrder(t *testing.T) {
	m := Metrics{TotalRecords: 150000, HasMedical: true, HasSensitiveData: true}
	c := Classify(m)

	if !c.NeedsReporting {
		t.Fatal("NeedsReporting = false, want true")
	}
	// High security level, volume, and medical-plus-volume all hold, in
	// that order.
	if len(c.ReportingReasons) != 3 {
		t.Fatalf("got %d reasons, want 3: %v", len(c.ReportingReasons), c.ReportingReasons)
	}
}

func TestClassifyCiso(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want bool
	}{
		{"sensitive and broad access", Metrics{HasSensitiveData: true, MaxAccess: 50}, true},
		{"sensitive, narrow access", Metrics{HasSensitiveData: true, MaxAccess: 10}, false},
		{"broad access, not sensitive", Metrics{MaxAccess: 150}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.m)
			if c.NeedsCiso != tt.want {
				t.Errorf("NeedsCiso = %v, want %v", c.NeedsCiso, tt.want)
			}
			if tt.want && c.CisoReason == "" {
				t.Error("CisoReason is empty")
			}
			if !tt.want && c.CisoReason != "" {
				t.Errorf("CisoReason = %q, want empty", c.CisoReason)
			}
		})
	}
}
