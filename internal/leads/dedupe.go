package leads

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/leadscout/internal/model"
)

var foldCaser = cases.Fold()

// foldKey normalizes a key component for case-insensitive comparison.
func foldKey(s string) string {
	return foldCaser.String(strings.TrimSpace(s))
}

// nameKey is the primary identity key: case-insensitive (name, company).
func nameKey(l model.Lead) string {
	return foldKey(l.Name) + "\x00" + foldKey(l.Company)
}

// contactKey is the secondary identity key: the contact URL or email, when
// present. Two records sharing a contact are the same person regardless of
// how their name or company was spelled.
func contactKey(l model.Lead) string {
	c := foldKey(l.Contact)
	if c == "" {
		return ""
	}
	return c
}

// Dedupe collapses records describing the same entity, keeping the
// highest-scoring duplicate (first seen wins on exact score ties). Output
// order is first-seen order; the ranker imposes the final order.
func Dedupe(in []model.Lead) []model.Lead {
	entries := make([]model.Lead, 0, len(in))
	byName := make(map[string]int, len(in))
	byContact := make(map[string]int, len(in))
	dropped := make(map[int]struct{})

	repoint := func(from, to int) {
		for k, v := range byName {
			if v == from {
				byName[k] = to
			}
		}
		for k, v := range byContact {
			if v == from {
				byContact[k] = to
			}
		}
	}

	for _, lead := range in {
		nk := nameKey(lead)
		ck := contactKey(lead)

		nIdx, nSeen := byName[nk]
		var cIdx int
		var cSeen bool
		if ck != "" {
			cIdx, cSeen = byContact[ck]
		}

		if !nSeen && !cSeen {
			entries = append(entries, lead)
			idx := len(entries) - 1
			byName[nk] = idx
			if ck != "" {
				byContact[ck] = idx
			}
			continue
		}

		idx := nIdx
		if !nSeen {
			idx = cIdx
		}

		// A record can bridge two earlier entries, one per key. Collapse
		// the later entry into the earlier one before merging the record,
		// so neither identity key survives twice.
		if nSeen && cSeen && nIdx != cIdx {
			keep, drop := nIdx, cIdx
			if drop < keep {
				keep, drop = drop, keep
			}
			if entries[drop].RelevanceScore > entries[keep].RelevanceScore {
				entries[keep] = entries[drop]
			}
			dropped[drop] = struct{}{}
			repoint(drop, keep)
			idx = keep
		}

		if lead.RelevanceScore > entries[idx].RelevanceScore {
			entries[idx] = lead
		}
		// Register this record's keys against the surviving entry so later
		// duplicates under either key collapse into it.
		byName[nk] = idx
		if ck != "" {
			byContact[ck] = idx
		}
	}

	if len(dropped) == 0 {
		return entries
	}
	out := make([]model.Lead, 0, len(entries)-len(dropped))
	for i, lead := range entries {
		if _, gone := dropped[i]; !gone {
			out = append(out, lead)
		}
	}
	return out
}

// DedupeCompanies collapses companies by case-insensitive name, first seen
// wins, preserving input order.
func DedupeCompanies(in []model.Company) []model.Company {
	out := make([]model.Company, 0, len(in))
	seen := make(map[string]int, len(in))

	for _, c := range in {
		key := foldKey(c.Name)
		idx, dup := seen[key]
		if !dup {
			out = append(out, c)
			seen[key] = len(out) - 1
			continue
		}
		// Prefer the first record but backfill a missing domain.
		if out[idx].Domain == "" && c.Domain != "" {
			out[idx].Domain = c.Domain
		}
	}

	return out
}
