package review

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(tx *gorm.DB, review *Review) error
	ListByCurriculum(curriculumID uuid.UUID) ([]Review, error)
	AverageRatingByCurriculum(tx *gorm.DB, curriculumID uuid.UUID) (float64, error)
	UpdateClassification(id uuid.UUID, sentiment, label string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(tx *gorm.DB, review *Review) error {
	return tx.Create(review).Error
}

func (r *reviewRepository) ListByCurriculum(curriculumID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.
		Joins("JOIN enrollments ON enrollments.id = reviews.enrollment_id").
		Where("enrollments.curriculum_id = ?", curriculumID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AverageRatingByCurriculum(tx *gorm.DB, curriculumID uuid.UUID) (float64, error) {
	var avg float64
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Joins("JOIN enrollments ON enrollments.id = reviews.enrollment_id").
		Where("enrollments.curriculum_id = ?", curriculumID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *reviewRepository) UpdateClassification(id uuid.UUID, sentiment, label string) error {
	return r.db.Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sentiment": sentiment,
			"label":     label,
		}).Error
}
