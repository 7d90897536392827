package carto

import (
	"fmt"
	"sort"
	"strings"
)

// Statement is a typed intermediate representation of a registry query.
// Call sites build predicates and projections; only Serialize produces wire
// text, and every literal passes through the one escaping function.
type Statement struct {
	columns    []string
	table      string
	predicates []predicate
	orderBy    []string
	limit      int
}

type predicate struct {
	column string
	op     string
	values []string
}

// Select starts a statement projecting the named columns. An empty column
// list projects everything.
func Select(columns ...string) *Statement {
	return &Statement{columns: columns}
}

// From sets the source table.
func (s *Statement) From(table string) *Statement {
	s.table = table
	return s
}

// WhereLike adds a case-insensitive substring predicate. The pattern is
// expected to already carry its wildcard markers.
func (s *Statement) WhereLike(column, pattern string) *Statement {
	s.predicates = append(s.predicates, predicate{column: column, op: "ILIKE", values: []string{pattern}})
	return s
}

// WhereEqual adds a string equality predicate.
func (s *Statement) WhereEqual(column, value string) *Statement {
	s.predicates = append(s.predicates, predicate{column: column, op: "=", values: []string{escapeLiteral(value)}})
	return s
}

// WhereYearIn adds an integer-set membership predicate. Years are
// deduplicated and sorted so the serialized form is deterministic.
func (s *Statement) WhereYearIn(column string, years []int) *Statement {
	seen := make(map[int]bool, len(years))
	unique := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			unique = append(unique, y)
		}
	}
	sort.Ints(unique)

	values := make([]string, 0, len(unique))
	for _, y := range unique {
		values = append(values, fmt.Sprintf("%d", y))
	}
	s.predicates = append(s.predicates, predicate{column: column, op: "IN", values: values})
	return s
}

// OrderBy appends an ordering column, ascending.
func (s *Statement) OrderBy(column string) *Statement {
	s.orderBy = append(s.orderBy, column)
	return s
}

// Limit bounds the result set. Zero means no limit clause.
func (s *Statement) Limit(n int) *Statement {
	s.limit = n
	return s
}

// Serialize renders the statement in the remote service's SQL dialect.
func (s *Statement) Serialize() string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(s.table)

	if len(s.predicates) > 0 {
		b.WriteString(" WHERE ")
		clauses := make([]string, 0, len(s.predicates))
		for _, p := range s.predicates {
			switch p.op {
			case "IN":
				clauses = append(clauses, fmt.Sprintf("%s IN (%s)", p.column, strings.Join(p.values, ", ")))
			default:
				clauses = append(clauses, fmt.Sprintf("%s %s '%s'", p.column, p.op, p.values[0]))
			}
		}
		b.WriteString(strings.Join(clauses, " AND "))
	}

	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.orderBy, ", "))
		b.WriteString(" ASC")
	}

	if s.limit > 0 {
		b.WriteString(fmt.Sprintf(" LIMIT %d", s.limit))
	}

	return b.String()
}

// escapeLiteral doubles single quotes so a value is safe inside a quoted
// SQL literal. ILIKE patterns arrive pre-escaped from the normalizer and
// skip this to avoid double escaping.
func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
