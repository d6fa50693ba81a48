package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

func TestDefault_Parses(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, d.Workers)
	assert.NotEmpty(t, d.Jobs)
	assert.NotEmpty(t, d.Employers)
	assert.NotEmpty(t, d.Articles)
	assert.NotEmpty(t, d.Trainings)
	assert.NotEmpty(t, d.FAQ)
	assert.NotEmpty(t, d.SkillGroups)
	assert.NotEmpty(t, d.Pages)
	assert.NotEmpty(t, d.Settings)
	assert.Empty(t, d.Applications)
}

func TestDefault_RecordsAreConsistent(t *testing.T) {
	d := MustDefault()

	seen := map[string]bool{}
	for _, w := range d.Workers {
		assert.False(t, seen[w.ID], "дубликат id %s", w.ID)
		seen[w.ID] = true
		assert.NotEmpty(t, w.Skills, "у работника %s нет навыков", w.ID)
		for _, s := range w.Skills {
			assert.True(t, s.IsValid(), "неизвестный навык %s", s)
		}
		assert.False(t, w.CreatedAt.IsZero())
	}

	for _, j := range d.Jobs {
		assert.True(t, j.SkillCategory.IsValid(), j.ID)
		assert.True(t, j.DurationType.IsValid(), j.ID)
		assert.True(t, j.Status.IsValid(), j.ID)
		assert.LessOrEqual(t, j.BudgetMin, j.BudgetMax, j.ID)
	}

	for _, g := range d.SkillGroups {
		for _, s := range g.Skills {
			assert.True(t, s.IsValid(), "неизвестный навык %s в группе %s", s, g.ID)
		}
	}
}

func TestDefault_ReviewCountsMatchReviews(t *testing.T) {
	d := MustDefault()

	counts := map[string]int{}
	sums := map[string]int{}
	for _, r := range d.Reviews {
		assert.Equal(t, models.RoleWorker, r.RevieweeRole)
		counts[r.RevieweeID]++
		sums[r.RevieweeID] += r.Rating
	}

	for _, w := range d.Workers {
		if counts[w.ID] == 0 {
			continue
		}
		assert.Equal(t, counts[w.ID], w.ReviewCount, w.ID)
		assert.InDelta(t, float64(sums[w.ID])/float64(counts[w.ID]), w.AverageRating, 0.05, w.ID)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := MustDefault()
	b := MustDefault()

	a.Workers[0].FullName = "изменено"
	assert.NotEqual(t, a.Workers[0].FullName, b.Workers[0].FullName)
}
