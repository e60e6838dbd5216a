package leads

import (
	"sort"

	"github.com/sells-group/leadscout/internal/model"
)

// Rank sorts leads by relevance score descending (stable: equal scores keep
// their relative order) and truncates to at most limit entries. The input
// slice is not modified.
func Rank(leads []model.Lead, limit int) []model.Lead {
	out := make([]model.Lead, len(leads))
	copy(out, leads)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RankCompanies orders companies alphabetically by name, the deterministic
// substitute ranking for records without a meaningful numeric score.
func RankCompanies(companies []model.Company) []model.Company {
	out := make([]model.Company, len(companies))
	copy(out, companies)

	sort.SliceStable(out, func(i, j int) bool {
		return foldKey(out[i].Name) < foldKey(out[j].Name)
	})
	return out
}
