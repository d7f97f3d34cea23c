package compliance

import "github.com/mydpo/mydpo/internal/profile"

// sizeBracketMidpoints maps intake size brackets to record-count midpoints.
// These values are the contract with the intake form that collected them.
var sizeBracketMidpoints = map[string]int{
	"under100": 50,
	"100-1k":   500,
	"1k-10k":   5000,
	"10k-100k": 50000,
	"100k+":    150000,
}

// defaultSizeMidpoint is used when a database has no recognized size bracket.
// Under-counting is safer than failing: an unknown bracket means the smallest
// bucket, not an error.
const defaultSizeMidpoint = 50

// accessBracketCounts maps intake access brackets to head counts.
var accessBracketCounts = map[string]int{
	"1-2":    2,
	"3-10":   10,
	"11-50":  50,
	"50-100": 100,
	"100+":   150,
}

// recordsForBracket returns the record-count midpoint for a size bracket.
func recordsForBracket(bracket string) int {
	if n, ok := sizeBracketMidpoints[bracket]; ok {
		return n
	}
	return defaultSizeMidpoint
}

// accessForBracket returns the head count for an access bracket. Unknown or
// missing brackets yield 0 so that a database with no declared tier cannot
// suppress a higher tier found on another database when taking the maximum.
func accessForBracket(bracket string) int {
	if n, ok := accessBracketCounts[bracket]; ok {
		return n
	}
	return 0
}

// ExtractMetrics normalizes an intake profile into the scalar metrics used
// by every downstream rule. It tolerates missing data at every level and
// never fails: profile answers are user-entered and have survived several
// form revisions.
func ExtractMetrics(p *profile.Profile) Metrics {
	if p == nil {
		p = &profile.Profile{}
	}

	m := Metrics{
		HasMedical:      p.HasDatabase(profile.DBMedical),
		HasCameras:      p.HasDatabase(profile.DBCameras),
		HasCVs:          p.HasDatabase(profile.DBCVs),
		HasWebsiteLeads: p.HasDatabase(profile.DBWebsiteLeads),
	}

	all := p.AllDatabases()
	m.DBCount = len(all)
	for _, kind := range all {
		detail := p.Detail(kind)
		m.TotalRecords += recordsForBracket(detail.Size)
		if access := accessForBracket(detail.Access); access > m.MaxAccess {
			m.MaxAccess = access
		}
	}

	m.SensitiveIndustry = p.Industry == profile.IndustryHealth || p.Industry == profile.IndustryFinance
	m.HasSensitiveData = m.HasMedical || m.SensitiveIndustry

	return m
}
