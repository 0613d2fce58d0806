// Package search implements the dynamic filter construction used by the
// candidate and application search surfaces. Each optional criterion is a
// predicate with a presence check and a composition rule; present criteria
// are folded conjunctively into a single WHERE clause, absent criteria
// impose no constraint.
package search

import (
	"fmt"
	"strings"
	"time"
)

// Builder accumulates SQL conditions and positional arguments. Conditions
// added through the helpers are AND-composed; Or opens an OR-composed group.
type Builder struct {
	conds []string
	args  []any
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// bind registers an argument and returns its positional placeholder.
func (b *Builder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Cond adds a raw condition. The format string must contain one %s per
// argument; each is replaced with the argument's positional placeholder.
func (b *Builder) Cond(format string, args ...any) {
	b.conds = append(b.conds, b.render(format, args...))
}

func (b *Builder) render(format string, args ...any) string {
	placeholders := make([]any, len(args))
	for i, a := range args {
		placeholders[i] = b.bind(a)
	}
	return fmt.Sprintf(format, placeholders...)
}

// Contains adds a case-insensitive substring match when value is non-empty.
func (b *Builder) Contains(column, value string) {
	if value == "" {
		return
	}
	b.Cond(column+" ILIKE %s", LikePattern(value))
}

// Equals adds an exact match when value is non-empty.
func (b *Builder) Equals(column, value string) {
	if value == "" {
		return
	}
	b.Cond(column+" = %s", value)
}

// IntRange adds lower/upper bounds for whichever ends are present.
func (b *Builder) IntRange(column string, min, max *int64) {
	if min != nil {
		b.Cond(column+" >= %s", *min)
	}
	if max != nil {
		b.Cond(column+" <= %s", *max)
	}
}

// FloatRange adds lower/upper bounds for whichever ends are present.
func (b *Builder) FloatRange(column string, min, max *float64) {
	if min != nil {
		b.Cond(column+" >= %s", *min)
	}
	if max != nil {
		b.Cond(column+" <= %s", *max)
	}
}

// UpdatedSince constrains a timestamp column to a recency window.
func (b *Builder) UpdatedSince(column string, since time.Time) {
	if since.IsZero() {
		return
	}
	b.Cond(column+" >= %s", since)
}

// JSONTextMatch adds a case-insensitive substring match against the elements
// of a JSONB text array column.
func (b *Builder) JSONTextMatch(column, value string) {
	if value == "" {
		return
	}
	b.Cond(
		"EXISTS (SELECT 1 FROM jsonb_array_elements_text("+column+") AS elem WHERE elem ILIKE %s)",
		LikePattern(value),
	)
}

// Group collects OR-composed conditions sharing the parent's argument list.
type Group struct {
	b     *Builder
	conds []string
}

// Or opens an OR group; the group becomes a single AND-composed condition.
// An empty group adds nothing.
func (b *Builder) Or(build func(or *Group)) {
	g := &Group{b: b}
	build(g)
	if len(g.conds) == 0 {
		return
	}
	b.conds = append(b.conds, "("+strings.Join(g.conds, " OR ")+")")
}

// Cond adds one alternative to the OR group.
func (g *Group) Cond(format string, args ...any) {
	g.conds = append(g.conds, g.b.render(format, args...))
}

// Contains adds a substring-match alternative to the OR group.
func (g *Group) Contains(column, value string) {
	if value == "" {
		return
	}
	g.Cond(column+" ILIKE %s", LikePattern(value))
}

// JSONTextMatch adds a JSONB text-array alternative to the OR group.
func (g *Group) JSONTextMatch(column, value string) {
	if value == "" {
		return
	}
	g.Cond(
		"EXISTS (SELECT 1 FROM jsonb_array_elements_text("+column+") AS elem WHERE elem ILIKE %s)",
		LikePattern(value),
	)
}

// Empty reports whether no condition has been added.
func (b *Builder) Empty() bool {
	return len(b.conds) == 0
}

// Clause returns the folded condition (without the WHERE keyword) and its
// arguments. An empty builder yields "TRUE" so callers can splice
// unconditionally.
func (b *Builder) Clause() (string, []any) {
	if len(b.conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(b.conds, " AND "), b.args
}

// ArgOffset returns the next positional index, letting callers append their
// own placeholders (LIMIT/OFFSET) after the filter arguments.
func (b *Builder) ArgOffset() int {
	return len(b.args) + 1
}

// LikePattern escapes LIKE metacharacters in v and wraps it in wildcards
// for a substring match.
func LikePattern(v string) string {
	v = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(v)
	return "%" + v + "%"
}

// SplitLocation splits a "City, State" value into its components. Both
// components must match (AND, not OR) when filtering.
func SplitLocation(loc string) []string {
	parts := strings.Split(loc, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseFreshness maps a recency token (24h, 7d, 30d) to the cutoff time
// relative to now. Unknown tokens return the zero time (no constraint).
func ParseFreshness(token string, now time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "24h", "1d":
		return now.Add(-24 * time.Hour)
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// Overlap counts the case-insensitive intersection of requested and held
// skill sets. Used for relevance ranking.
func Overlap(requested, held []string) int {
	if len(requested) == 0 || len(held) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(held))
	for _, h := range held {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	n := 0
	seen := make(map[string]struct{}, len(requested))
	for _, r := range requested {
		key := strings.ToLower(strings.TrimSpace(r))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			n++
		}
	}
	return n
}
