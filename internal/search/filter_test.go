package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_AbsentCriteriaAddNothing(t *testing.T) {
	b := NewBuilder()
	b.Contains("title", "")
	b.Equals("gender", "")
	b.IntRange("expected_salary", nil, nil)
	b.JSONTextMatch("skills", "")
	b.Or(func(or *Group) {
		or.Contains("title", "")
	})

	assert.True(t, b.Empty())
	clause, args := b.Clause()
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)
}

func TestBuilder_ConjunctiveComposition(t *testing.T) {
	min := int64(50000)
	max := int64(90000)

	b := NewBuilder()
	b.Contains("location", "Pune")
	b.IntRange("expected_salary", &min, &max)

	clause, args := b.Clause()
	assert.Equal(t, "location ILIKE $1 AND expected_salary >= $2 AND expected_salary <= $3", clause)
	assert.Equal(t, []any{"%Pune%", min, max}, args)
}

func TestBuilder_OrGroup(t *testing.T) {
	b := NewBuilder()
	b.Or(func(or *Group) {
		or.JSONTextMatch("skills", "Java")
		or.Contains("title", "Java")
	})
	b.Equals("gender", "female")

	clause, args := b.Clause()
	assert.Contains(t, clause, " OR ")
	assert.Contains(t, clause, "skills")
	// OR group folds to one AND-composed condition
	assert.Equal(t, 1, countTopLevelAnds(clause))
	assert.Len(t, args, 3)
}

func countTopLevelAnds(clause string) int {
	depth, n := 0, 0
	for i := 0; i+5 <= len(clause); i++ {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && clause[i:i+5] == " AND " {
			n++
		}
	}
	return n
}

func TestBuilder_LikeEscaping(t *testing.T) {
	b := NewBuilder()
	b.Contains("title", "100%_sure")

	_, args := b.Clause()
	assert.Equal(t, []any{`%100\%\_sure%`}, args)
}

func TestSplitLocation(t *testing.T) {
	assert.Equal(t, []string{"Pune", "Maharashtra"}, SplitLocation("Pune, Maharashtra"))
	assert.Equal(t, []string{"Pune"}, SplitLocation("Pune"))
	assert.Empty(t, SplitLocation(" , "))
}

func TestParseFreshness(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-24*time.Hour), ParseFreshness("24h", now))
	assert.Equal(t, now.AddDate(0, 0, -7), ParseFreshness("7D", now))
	assert.Equal(t, now.AddDate(0, 0, -30), ParseFreshness("30d", now))
	assert.True(t, ParseFreshness("forever", now).IsZero())
	assert.True(t, ParseFreshness("", now).IsZero())
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		held      []string
		want      int
	}{
		{"disjoint", []string{"Java", "SQL"}, []string{"Go"}, 0},
		{"partial", []string{"Java", "SQL"}, []string{"sql", "Python"}, 1},
		{"full case-insensitive", []string{"Java", "SQL"}, []string{"JAVA", " sql "}, 2},
		{"duplicate request counted once", []string{"Java", "java"}, []string{"Java"}, 1},
		{"empty held", []string{"Java"}, nil, 0},
		{"empty requested", nil, []string{"Java"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlap(tt.requested, tt.held))
		})
	}
}

func TestBuilder_ArgOffset(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, 1, b.ArgOffset())
	b.Equals("status", "open")
	assert.Equal(t, 2, b.ArgOffset())
}
