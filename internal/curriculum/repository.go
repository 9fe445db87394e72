package curriculum

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CurriculumRepository interface {
	List(search string) ([]*Curriculum, error)
	GetBySlug(slug string) (*Curriculum, error)
	GetUnitBySlug(slug string) (*SyllabusUnit, error)
	GetTopicBySlug(slug string) (*Topic, error)

	SlugTaken(model interface{}, slug string) (bool, error)
	MaxUnitOrder(tx *gorm.DB, curriculumID uuid.UUID) (int, error)
	MaxTopicOrder(tx *gorm.DB, unitID uuid.UUID) (int, error)
}

type curriculumRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) List(search string) ([]*Curriculum, error) {
	var curricula []*Curriculum
	q := r.db.Preload("Syllabus", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	})
	if search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if err := q.Order("name ASC").Find(&curricula).Error; err != nil {
		return nil, err
	}
	return curricula, nil
}

func (r *curriculumRepository) GetBySlug(slug string) (*Curriculum, error) {
	var c Curriculum
	err := r.db.
		Preload("Syllabus", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Syllabus.Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Syllabus.Topics.Resources").
		First(&c, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *curriculumRepository) GetUnitBySlug(slug string) (*SyllabusUnit, error) {
	var u SyllabusUnit
	if err := r.db.First(&u, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *curriculumRepository) GetTopicBySlug(slug string) (*Topic, error) {
	var t Topic
	if err := r.db.Preload("Resources").First(&t, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *curriculumRepository) SlugTaken(model interface{}, slug string) (bool, error) {
	var count int64
	if err := r.db.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *curriculumRepository) MaxUnitOrder(tx *gorm.DB, curriculumID uuid.UUID) (int, error) {
	var max int
	err := tx.Model(&SyllabusUnit{}).
		Where("curriculum_id = ?", curriculumID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	return max, err
}

func (r *curriculumRepository) MaxTopicOrder(tx *gorm.DB, unitID uuid.UUID) (int, error) {
	var max int
	err := tx.Model(&Topic{}).
		Where("syllabus_unit_id = ?", unitID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	return max, err
}
