package enrollment

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository interface {
	GetByUserAndCurriculum(userID, curriculumID uuid.UUID) (*Enrollment, error)
	GetByUserAndCurriculumSlug(userID uuid.UUID, slug string) (*Enrollment, error)
	ListByUser(userID uuid.UUID) ([]*Enrollment, error)
	ListEntries(enrollmentID uuid.UUID) ([]ProgressEntry, error)

	GetEntryByUserAndTopicSlug(tx *gorm.DB, userID uuid.UUID, topicSlug string, forUpdate bool) (*ProgressEntry, error)
	SaveEntry(tx *gorm.DB, entry *ProgressEntry) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) GetByUserAndCurriculum(userID, curriculumID uuid.UUID) (*Enrollment, error) {
	var e Enrollment
	err := r.db.First(&e, "user_id = ? AND curriculum_id = ?", userID, curriculumID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) GetByUserAndCurriculumSlug(userID uuid.UUID, slug string) (*Enrollment, error) {
	curriculumID := r.db.Model(&curriculum.Curriculum{}).Select("id").Where("slug = ?", slug)

	var e Enrollment
	err := r.db.
		Preload("Curriculum").
		Preload("Curriculum.Syllabus", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("user_id = ? AND curriculum_id IN (?)", userID, curriculumID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) ListByUser(userID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	err := r.db.
		Preload("Curriculum").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListEntries(enrollmentID uuid.UUID) ([]ProgressEntry, error) {
	var entries []ProgressEntry
	err := r.db.
		Preload("Topic").
		Where("enrollment_id = ?", enrollmentID).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntryByUserAndTopicSlug resolves the ledger row for (learner, topic).
// With forUpdate the row is locked until the surrounding transaction ends,
// which serializes concurrent quiz submissions for the same entry.
func (r *enrollmentRepository) GetEntryByUserAndTopicSlug(tx *gorm.DB, userID uuid.UUID, topicSlug string, forUpdate bool) (*ProgressEntry, error) {
	q := tx.Model(&ProgressEntry{}).
		Joins("JOIN enrollments ON enrollments.id = progress_entries.enrollment_id").
		Joins("JOIN topics ON topics.id = progress_entries.topic_id").
		Where("enrollments.user_id = ? AND topics.slug = ?", userID, topicSlug)

	// SQLite (used in tests) has no FOR UPDATE; its single writer
	// serializes anyway.
	if forUpdate && tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "progress_entries"},
		})
	}

	var entry ProgressEntry
	if err := q.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *enrollmentRepository) SaveEntry(tx *gorm.DB, entry *ProgressEntry) error {
	return tx.Save(entry).Error
}
