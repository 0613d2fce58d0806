package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

func TestCandidatePostgres_UpsertStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO candidate_status").
		WithArgs("cand-1", "emp-1", model.StatusShortlisted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCandidatePostgres(db)
	err = repo.UpsertStatus(context.Background(), &model.EmployerStatus{
		CandidateID: "cand-1",
		RecruiterID: "emp-1",
		Status:      model.StatusShortlisted,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidatePostgres_StatusCounts(t *testing.T) {
	// Status counts fill in zeroes for states absent from the result set.
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(model.StatusViewed, 4).
		AddRow(model.StatusShortlisted, 2)
	mock.ExpectQuery("SELECT cs.status, COUNT").
		WithArgs("emp-1").
		WillReturnRows(rows)

	repo := NewCandidatePostgres(db)
	counts, err := repo.StatusCounts(context.Background(), repository.CandidateQuery{}, "emp-1")

	assert.NoError(t, err)
	assert.Equal(t, 4, counts[model.StatusViewed])
	assert.Equal(t, 2, counts[model.StatusShortlisted])
	assert.Equal(t, 0, counts[model.StatusRejected])
	assert.Equal(t, 0, counts[model.StatusHold])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildCandidateFilter_Composition(t *testing.T) {
	min := int64(40000)

	t.Run("conjunctive: location and salary both constrain", func(t *testing.T) {
		q := repository.CandidateQuery{Location: "Pune, Maharashtra", SalaryMin: &min}
		clause, args := buildCandidateFilter(q, true).Clause()

		assert.Contains(t, clause, "preferred_locations")
		assert.Contains(t, clause, "expected_salary >=")
		assert.Contains(t, clause, " AND ")
		assert.Len(t, args, 3) // two location components + salary bound
	})

	t.Run("skill token broadens to title and experience", func(t *testing.T) {
		q := repository.CandidateQuery{Skills: []string{"Java"}}
		clause, args := buildCandidateFilter(q, true).Clause()

		assert.Contains(t, clause, "skills")
		assert.Contains(t, clause, "title ILIKE")
		assert.Contains(t, clause, "experience")
		assert.Contains(t, clause, " OR ")
		assert.Len(t, args, 3)
	})

	t.Run("skill metacharacters escaped in every branch", func(t *testing.T) {
		q := repository.CandidateQuery{Skills: []string{"C%"}}
		_, args := buildCandidateFilter(q, true).Clause()

		require.Len(t, args, 3)
		for _, a := range args {
			assert.Equal(t, `%C\%%`, a)
		}
	})

	t.Run("status criterion excluded when counting", func(t *testing.T) {
		q := repository.CandidateQuery{RecruiterID: "emp-1", Status: model.StatusViewed}

		withStatus, _ := buildCandidateFilter(q, true).Clause()
		withoutStatus, _ := buildCandidateFilter(q, false).Clause()

		assert.Contains(t, withStatus, "candidate_status")
		assert.NotContains(t, withoutStatus, "candidate_status")
	})

	t.Run("empty query imposes no constraint", func(t *testing.T) {
		clause, args := buildCandidateFilter(repository.CandidateQuery{}, true).Clause()
		assert.Equal(t, "TRUE", clause)
		assert.Empty(t, args)
	})

	t.Run("freshness window constrains updated_at", func(t *testing.T) {
		q := repository.CandidateQuery{UpdatedSince: time.Now().Add(-24 * time.Hour)}
		clause, args := buildCandidateFilter(q, true).Clause()

		assert.Contains(t, clause, "updated_at >=")
		assert.Len(t, args, 1)
	})
}
