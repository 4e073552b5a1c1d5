// Package keywords tokenizes issue-tracker text and produces ranked,
// categorized term frequencies.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"tapdlens/internal/issuedata"
)

// FieldSet selects which record fields feed the analysis.
type FieldSet int

const (
	CoreFields FieldSet = iota
	ExtendedFields
)

// Result is C8's output per §4.8.
type Result struct {
	TotalTokens           int             `json:"total_tokens"`
	UniqueTokens          int             `json:"unique_tokens"`
	HighFrequencyTokens   map[string]int  `json:"high_frequency_tokens"`
	FrequencyDistribution map[string]int  `json:"frequency_distribution"`
	Top20Tokens           []TokenCount    `json:"top_20_tokens"`
	CategoryKeywords      map[string][]string `json:"category_keywords"`
}

// TokenCount pairs a token with its occurrence count.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Analyze tokenizes every record's selected fields, filters noise tokens,
// and ranks what's left by frequency. Deterministic given the same dataset
// and parameters (I1): ties are broken alphabetically, not by map order.
func Analyze(ds *issuedata.Dataset, fields FieldSet, minFrequency int) Result {
	counts := map[string]int{}
	total := 0

	for _, rec := range ds.Stories {
		for _, tok := range tokenizeRecord(rec, fields) {
			counts[tok]++
			total++
		}
	}
	for _, rec := range ds.Bugs {
		for _, tok := range tokenizeRecord(rec, fields) {
			counts[tok]++
			total++
		}
	}

	dist := map[string]int{}
	for _, c := range counts {
		dist[frequencyRange(c)]++
	}

	high := map[string]int{}
	for tok, c := range counts {
		if c >= minFrequency {
			high[tok] = c
		}
	}

	ranked := rankedTokens(counts)

	top20 := ranked
	if len(top20) > 20 {
		top20 = top20[:20]
	}

	highTokens := make([]string, 0, len(high))
	for _, tc := range ranked {
		if tc.Count >= minFrequency {
			highTokens = append(highTokens, tc.Token)
		}
	}

	return Result{
		TotalTokens:           total,
		UniqueTokens:          len(counts),
		HighFrequencyTokens:   high,
		FrequencyDistribution: dist,
		Top20Tokens:           top20,
		CategoryKeywords:      categorize(highTokens),
	}
}

func rankedTokens(counts map[string]int) []TokenCount {
	ranked := make([]TokenCount, 0, len(counts))
	for tok, c := range counts {
		ranked = append(ranked, TokenCount{Token: tok, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Token < ranked[j].Token
	})
	return ranked
}

func frequencyRange(count int) string {
	switch {
	case count >= 100:
		return "100+"
	case count >= 50:
		return "50-99"
	case count >= 20:
		return "20-49"
	case count >= 10:
		return "10-19"
	case count >= 5:
		return "5-9"
	default:
		return "1-4"
	}
}

func tokenizeRecord(rec issuedata.Record, fields FieldSet) []string {
	text := concatFields(rec, fields)

	var tokens []string
	for _, tok := range segment(text) {
		if isNoise(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// concatFields joins the core fields (title, description) and, if
// requested, the extended fields (status, priority, creator/reporter,
// iteration id) — the generalization of the original's key_fields /
// extended_fields split onto this engine's own record shape.
func concatFields(rec issuedata.Record, fields FieldSet) string {
	parts := []string{rec.Title, rec.Description}
	if fields == ExtendedFields {
		parts = append(parts, rec.Status, rec.Priority, rec.Creator, rec.Reporter, rec.IterationID)
	}
	return strings.Join(parts, " ")
}

func isNoise(tok string) bool {
	if len([]rune(tok)) <= 1 {
		return true
	}
	if isAllDigits(tok) {
		return true
	}
	return isStopWord(tok)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
