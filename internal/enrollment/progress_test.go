package enrollment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func entry(unitID uuid.UUID, completed bool) ProgressEntry {
	return ProgressEntry{
		ID:             uuid.New(),
		SyllabusUnitID: unitID,
		TopicID:        uuid.New(),
		Completed:      completed,
	}
}

func TestUnitCompleted(t *testing.T) {
	unit := uuid.New()

	t.Run("AllEntriesCompleted", func(t *testing.T) {
		entries := []ProgressEntry{entry(unit, true), entry(unit, true)}
		assert.True(t, UnitCompleted(entries))
	})

	t.Run("OneIncompleteEntry", func(t *testing.T) {
		entries := []ProgressEntry{entry(unit, true), entry(unit, false)}
		assert.False(t, UnitCompleted(entries))
	})

	t.Run("NoEntriesCountsAsCompleted", func(t *testing.T) {
		assert.True(t, UnitCompleted(nil))
	})
}

func TestOverallProgress(t *testing.T) {
	t.Run("ZeroUnits", func(t *testing.T) {
		assert.Equal(t, 0, OverallProgress(nil, nil))
	})

	t.Run("NothingCompleted", func(t *testing.T) {
		u1, u2 := uuid.New(), uuid.New()
		entries := []ProgressEntry{entry(u1, false), entry(u2, false)}
		assert.Equal(t, 0, OverallProgress([]uuid.UUID{u1, u2}, entries))
	})

	t.Run("HalfCompleted", func(t *testing.T) {
		u1, u2 := uuid.New(), uuid.New()
		entries := []ProgressEntry{entry(u1, true), entry(u2, false)}
		assert.Equal(t, 50, OverallProgress([]uuid.UUID{u1, u2}, entries))
	})

	t.Run("RoundsToNearestInteger", func(t *testing.T) {
		u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()
		entries := []ProgressEntry{entry(u1, true), entry(u2, false), entry(u3, false)}
		// 1/3 -> 33.33 -> 33
		assert.Equal(t, 33, OverallProgress([]uuid.UUID{u1, u2, u3}, entries))

		entries = []ProgressEntry{entry(u1, true), entry(u2, true), entry(u3, false)}
		// 2/3 -> 66.67 -> 67
		assert.Equal(t, 67, OverallProgress([]uuid.UUID{u1, u2, u3}, entries))
	})

	t.Run("UnitWithoutEntriesCounts", func(t *testing.T) {
		u1, u2 := uuid.New(), uuid.New()
		entries := []ProgressEntry{entry(u1, true)}
		assert.Equal(t, 100, OverallProgress([]uuid.UUID{u1, u2}, entries))
	})

	t.Run("PartialUnitDoesNotCount", func(t *testing.T) {
		u1 := uuid.New()
		entries := []ProgressEntry{entry(u1, true), entry(u1, false)}
		assert.Equal(t, 0, OverallProgress([]uuid.UUID{u1}, entries))
	})
}
