// Package address turns free-form property address text into a pattern
// suitable for substring matching against the registry's address column.
package address

import (
	"strconv"
	"strings"
)

// suffixRule maps a long-form street suffix to its registry abbreviation.
type suffixRule struct {
	long string
	abbr string
}

// Ordered. The first rule whose long form ends the address wins and no
// further rules are tried, even when another long form would also match.
var suffixRules = []suffixRule{
	{"STREET", "ST"},
	{"AVENUE", "AVE"},
	{"BOULEVARD", "BLVD"},
	{"ROAD", "RD"},
	{"DRIVE", "DR"},
	{"PLACE", "PL"},
	{"COURT", "CT"},
	{"LANE", "LN"},
	{"TERRACE", "TER"},
}

// Normalize converts raw address text into an ILIKE substring pattern.
//
// The heuristic targets the common "<number> <name> <suffix word>" shape:
// anything after the first comma (city/state/zip paste-ins) is dropped, the
// remainder is uppercased, a leading integer token loses its zero padding,
// and exactly one long-form street suffix is collapsed to its abbreviation.
// Single quotes are doubled for SQL-literal safety and the result is wrapped
// in wildcard markers. Empty or whitespace-only input yields an empty
// pattern; callers treat that as "no match" and must not query with it.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if idx := strings.Index(text, ","); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
		if text == "" {
			return ""
		}
	}

	text = strings.ToUpper(text)

	fields := strings.Fields(text)
	if len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			fields[0] = strconv.Itoa(n)
		}
	}
	text = strings.Join(fields, " ")

	for _, rule := range suffixRules {
		if strings.HasSuffix(text, rule.long) {
			text = text[:len(text)-len(rule.long)] + rule.abbr
			break
		}
	}

	text = strings.ReplaceAll(text, "'", "''")
	return "%" + text + "%"
}
