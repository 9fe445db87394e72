package quiz

import (
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(
	db *gorm.DB,
	entries enrollment.EnrollmentRepository,
	aggregator *enrollment.Aggregator,
	curriculumRepo curriculum.CurriculumRepository,
	retryInterval int,
) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, entries, aggregator, curriculumRepo, retryInterval)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
