package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/gorm"
)

var (
	ErrNotEnrolled        = errors.New("learner is not enrolled in this curriculum")
	ErrInvalidReview      = errors.New("rating must be between 1 and 5 and review text is required")
	ErrCurriculumNotFound = curriculum.ErrCurriculumNotFound
	ErrUnauthorized       = enrollment.ErrUnauthorized
)

type ReviewService interface {
	CreateReview(ctx context.Context, curriculumSlug string, dto CreateReviewDTO) (*Review, error)
	ListByCurriculum(ctx context.Context, curriculumSlug string) ([]Review, error)
}

type reviewService struct {
	repo           ReviewRepository
	enrollments    enrollment.EnrollmentRepository
	curriculumRepo curriculum.CurriculumRepository
	classifier     Classifier
	db             *gorm.DB
}

func NewService(
	db *gorm.DB,
	repo ReviewRepository,
	enrollments enrollment.EnrollmentRepository,
	curriculumRepo curriculum.CurriculumRepository,
	classifier Classifier,
) ReviewService {
	return &reviewService{
		repo:           repo,
		enrollments:    enrollments,
		curriculumRepo: curriculumRepo,
		classifier:     classifier,
		db:             db,
	}
}

// CreateReview stores the review and refreshes the curriculum's
// aggregate rating in one transaction. Classification runs on a
// goroutine after commit; a classifier outage never blocks or fails
// the review itself.
func (s *reviewService) CreateReview(ctx context.Context, curriculumSlug string, dto CreateReviewDTO) (*Review, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}
	userID := uuid.MustParse(claims.UserID)

	if dto.Rating < 1 || dto.Rating > 5 || strings.TrimSpace(dto.Review) == "" {
		return nil, ErrInvalidReview
	}

	e, err := s.enrollments.GetByUserAndCurriculumSlug(userID, curriculumSlug)
	if err != nil {
		log.WithError(err).Error("Failed to resolve enrollment for review")
		return nil, err
	}
	if e == nil {
		c, err := s.curriculumRepo.GetBySlug(curriculumSlug)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCurriculumNotFound
		}
		return nil, ErrNotEnrolled
	}

	review := &Review{
		ID:           uuid.New(),
		EnrollmentID: e.ID,
		Rating:       dto.Rating,
		Review:       strings.TrimSpace(dto.Review),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, review); err != nil {
			return err
		}

		avg, err := s.repo.AverageRatingByCurriculum(tx, e.CurriculumID)
		if err != nil {
			return err
		}

		return tx.Model(&curriculum.Curriculum{}).
			Where("id = ?", e.CurriculumID).
			UpdateColumn("rating", avg).Error
	})
	if err != nil {
		log.WithError(err).Error("Failed to create review")
		return nil, err
	}

	if s.classifier != nil {
		go s.classify(review.ID, review.Review)
	}

	log.WithField("review_id", review.ID).Info("Review created")
	return review, nil
}

func (s *reviewService) ListByCurriculum(ctx context.Context, curriculumSlug string) ([]Review, error) {
	log := config.WithContext(ctx)

	c, err := s.curriculumRepo.GetBySlug(curriculumSlug)
	if err != nil {
		log.WithError(err).Error("Failed to resolve curriculum")
		return nil, err
	}
	if c == nil {
		return nil, ErrCurriculumNotFound
	}

	return s.repo.ListByCurriculum(c.ID)
}

func (s *reviewService) classify(reviewID uuid.UUID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := config.WithContext(ctx)

	sentiment, label, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.WithError(err).WithField("review_id", reviewID).Warn("Review classification failed")
		return
	}

	if err := s.repo.UpdateClassification(reviewID, sentiment, label); err != nil {
		log.WithError(err).WithField("review_id", reviewID).Warn("Failed to store review classification")
	}
}
