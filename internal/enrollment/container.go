package enrollment

import (
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"gorm.io/gorm"
)

type EnrollmentContainer struct {
	Handler    *Handler
	Service    EnrollmentService
	Repo       EnrollmentRepository
	Aggregator *Aggregator
}

func NewEnrollmentContainer(db *gorm.DB, curriculumRepo curriculum.CurriculumRepository) *EnrollmentContainer {
	repo := NewRepository(db)
	aggregator := NewAggregator()
	service := NewService(db, repo, curriculumRepo, aggregator)
	handler := NewHandler(service)

	return &EnrollmentContainer{
		Handler:    handler,
		Service:    service,
		Repo:       repo,
		Aggregator: aggregator,
	}
}
