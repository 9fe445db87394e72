package review

import (
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/gorm"
)

type ReviewContainer struct {
	Handler *Handler
	Service ReviewService
	Repo    ReviewRepository
}

func NewReviewContainer(
	db *gorm.DB,
	enrollments enrollment.EnrollmentRepository,
	curriculumRepo curriculum.CurriculumRepository,
	classifier Classifier,
) *ReviewContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, enrollments, curriculumRepo, classifier)
	handler := NewHandler(service)

	return &ReviewContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
