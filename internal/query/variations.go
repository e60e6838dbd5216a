// Package query derives search query variations from user input. Several
// differently-phrased queries widen coverage so no single phrasing biases
// the result set.
package query

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxVariations caps the number of queries per run to bound upstream cost.
	MaxVariations = 12

	// jdSliceLen is how much of the job description is embedded in the
	// description-based variants, to bound prompt length sent downstream.
	jdSliceLen = 200
)

// roleSynonyms are appended to the base prompt to catch alternate titles
// for the people who own hiring decisions.
var roleSynonyms = []string{
	"hiring manager",
	"recruiter",
	"talent acquisition",
	"head of engineering",
	"HR director",
}

// actionPhrases rephrase the search intent.
var actionPhrases = []string{
	"companies hiring for",
	"open positions",
	"who is recruiting for",
}

// geoScopes broaden or narrow the geographic framing.
var geoScopes = []string{
	"remote",
	"United States",
}

// Variations produces an ordered, exactly-deduplicated list of query strings
// for one (prompt, jobDescription) pair. Deterministic: same inputs always
// yield the same list. Length is at least 1 and at most MaxVariations, and
// no entry is empty.
func Variations(prompt, jobDescription string) []string {
	base := strings.TrimSpace(prompt)
	jd := strings.TrimSpace(jobDescription)
	if base == "" {
		base = truncate(jd, jdSliceLen)
	}
	if base == "" {
		base = "hiring manager"
	}

	out := make([]string, 0, MaxVariations)
	seen := make(map[string]struct{}, MaxVariations)
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || len(out) >= MaxVariations {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}

	add(base)
	for _, role := range roleSynonyms {
		add(base + " " + role)
	}
	for _, phrase := range actionPhrases {
		add(phrase + " " + base)
	}
	for _, geo := range geoScopes {
		add(base + " " + geo)
	}
	if jd != "" {
		add(base + " " + truncate(jd, jdSliceLen))
	}

	return out
}

// truncate cuts s to at most n bytes on a word boundary where possible,
// never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	cut := s[:n]
	if idx := strings.LastIndexByte(cut, ' '); idx > n/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
