package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	ListQuestionsByTopic(tx *gorm.DB, topicID uuid.UUID) ([]*Question, error)
	CreateQuestion(tx *gorm.DB, q *Question) error
	DeleteQuestion(id uuid.UUID) error

	CreateAttempt(tx *gorm.DB, a *Attempt) error
	ListAttemptsByEntry(entryID uuid.UUID) ([]*Attempt, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) ListQuestionsByTopic(tx *gorm.DB, topicID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	err := tx.
		Preload("Options").
		Where("topic_id = ?", topicID).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) CreateQuestion(tx *gorm.DB, q *Question) error {
	return tx.Create(q).Error
}

func (r *quizRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&Question{}, "id = ?", id).Error
}

func (r *quizRepository) CreateAttempt(tx *gorm.DB, a *Attempt) error {
	return tx.Create(a).Error
}

func (r *quizRepository) ListAttemptsByEntry(entryID uuid.UUID) ([]*Attempt, error) {
	var attempts []*Attempt
	err := r.db.
		Where("progress_entry_id = ?", entryID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
