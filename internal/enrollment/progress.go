package enrollment

import (
	"math"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"gorm.io/gorm"
)

// UnitCompleted reports whether every ledger entry of one syllabus unit is
// completed. A unit with no entries counts as completed.
func UnitCompleted(entries []ProgressEntry) bool {
	for _, e := range entries {
		if !e.Completed {
			return false
		}
	}
	return true
}

// OverallProgress derives the enrollment percentage from the ledger:
// round(100 * completed units / total units). Zero units yields 0.
func OverallProgress(unitIDs []uuid.UUID, entries []ProgressEntry) int {
	if len(unitIDs) == 0 {
		return 0
	}

	byUnit := make(map[uuid.UUID][]ProgressEntry, len(unitIDs))
	for _, e := range entries {
		byUnit[e.SyllabusUnitID] = append(byUnit[e.SyllabusUnitID], e)
	}

	completed := 0
	for _, unitID := range unitIDs {
		if UnitCompleted(byUnit[unitID]) {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(len(unitIDs))))
}

// Aggregator keeps Enrollment.Progress in sync with the ledger. Recompute
// must run inside the same transaction as the ledger write that triggered
// it, so readers never observe one without the other.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) RecomputeTx(tx *gorm.DB, enrollmentID uuid.UUID) (int, bool, error) {
	var e Enrollment
	if err := tx.First(&e, "id = ?", enrollmentID).Error; err != nil {
		return 0, false, err
	}

	var unitIDs []uuid.UUID
	if err := tx.Model(&curriculum.SyllabusUnit{}).
		Where("curriculum_id = ?", e.CurriculumID).
		Pluck("id", &unitIDs).Error; err != nil {
		return 0, false, err
	}

	var entries []ProgressEntry
	if err := tx.Where("enrollment_id = ?", enrollmentID).Find(&entries).Error; err != nil {
		return 0, false, err
	}

	progress := OverallProgress(unitIDs, entries)
	completed := progress == 100

	err := tx.Model(&Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(map[string]interface{}{
			"progress":  progress,
			"completed": completed,
		}).Error
	if err != nil {
		return 0, false, err
	}

	return progress, completed, nil
}
