package enrollment

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	util "github.com/saulo-duarte/mentora-lambda/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled       = errors.New("already enrolled in this curriculum")
	ErrCurriculumNotFound    = curriculum.ErrCurriculumNotFound
	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrProgressEntryNotFound = errors.New("progress entry not found")
	ErrUnauthorized          = errors.New("unauthorized")
)

type EnrollmentService interface {
	Enroll(ctx context.Context, curriculumSlug string) (*Enrollment, error)
	ListByUser(ctx context.Context) ([]*EnrollmentSummary, error)
	GetProgress(ctx context.Context, curriculumSlug string) (*ProgressResponse, error)
}

type enrollmentService struct {
	repo           EnrollmentRepository
	curriculumRepo curriculum.CurriculumRepository
	aggregator     *Aggregator
	db             *gorm.DB
}

func NewService(db *gorm.DB, repo EnrollmentRepository, curriculumRepo curriculum.CurriculumRepository, aggregator *Aggregator) EnrollmentService {
	return &enrollmentService{
		repo:           repo,
		curriculumRepo: curriculumRepo,
		aggregator:     aggregator,
		db:             db,
	}
}

func getUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

// Enroll registers the learner into a curriculum and fans out one ledger
// entry per topic, all inside a single transaction. A crash mid fan-out
// leaves neither the enrollment nor partial entries behind.
func (s *enrollmentService) Enroll(ctx context.Context, curriculumSlug string) (*Enrollment, error) {
	log := config.WithContext(ctx)

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.curriculumRepo.GetBySlug(curriculumSlug)
	if err != nil {
		log.WithError(err).Error("Failed to resolve curriculum")
		return nil, err
	}
	if c == nil {
		return nil, ErrCurriculumNotFound
	}

	existing, err := s.repo.GetByUserAndCurriculum(userID, c.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.WithField("curriculum", curriculumSlug).Warn("Learner already enrolled")
		return nil, ErrAlreadyEnrolled
	}

	e := &Enrollment{
		ID:           uuid.New(),
		UserID:       userID,
		CurriculumID: c.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		var entries []ProgressEntry
		for _, unit := range c.Syllabus {
			for _, topic := range unit.Topics {
				entries = append(entries, ProgressEntry{
					ID:             uuid.New(),
					EnrollmentID:   e.ID,
					SyllabusUnitID: unit.ID,
					TopicID:        topic.ID,
				})
			}
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return tx.Model(&curriculum.Curriculum{}).
			Where("id = ?", c.ID).
			UpdateColumn("enrolled", gorm.Expr("enrolled + 1")).Error
	})
	if err != nil {
		// A concurrent enroll can slip past the read above and trip the
		// unique index on (user_id, curriculum_id).
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.WithField("curriculum", curriculumSlug).Warn("Learner already enrolled")
			return nil, ErrAlreadyEnrolled
		}
		log.WithError(err).Error("Failed to enroll learner")
		return nil, err
	}

	log.WithField("enrollment_id", e.ID).Info("Learner enrolled")
	return e, nil
}

func (s *enrollmentService) ListByUser(ctx context.Context) ([]*EnrollmentSummary, error) {
	log := config.WithContext(ctx)

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list enrollments")
		return nil, err
	}

	summaries := make([]*EnrollmentSummary, 0, len(enrollments))
	for _, e := range enrollments {
		summaries = append(summaries, &EnrollmentSummary{
			ID:         e.ID,
			Curriculum: curriculum.Summarize(&e.Curriculum),
			Progress:   e.Progress,
			Completed:  e.Completed,
			EnrolledAt: util.LocalDateTime{Time: e.EnrolledAt},
		})
	}
	return summaries, nil
}

func (s *enrollmentService) GetProgress(ctx context.Context, curriculumSlug string) (*ProgressResponse, error) {
	log := config.WithContext(ctx)

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.GetByUserAndCurriculumSlug(userID, curriculumSlug)
	if err != nil {
		log.WithError(err).Error("Failed to load enrollment")
		return nil, err
	}
	if e == nil {
		return nil, ErrEnrollmentNotFound
	}

	entries, err := s.repo.ListEntries(e.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load progress entries")
		return nil, err
	}

	byUnit := make(map[uuid.UUID][]ProgressEntry)
	for _, entry := range entries {
		byUnit[entry.SyllabusUnitID] = append(byUnit[entry.SyllabusUnitID], entry)
	}

	units := make([]UnitProgressResponse, 0, len(e.Curriculum.Syllabus))
	completedWeeks := 0
	for _, unit := range e.Curriculum.Syllabus {
		unitEntries := byUnit[unit.ID]
		sort.Slice(unitEntries, func(i, j int) bool {
			return unitEntries[i].Topic.OrderIndex < unitEntries[j].Topic.OrderIndex
		})

		topics := make([]TopicProgressResponse, 0, len(unitEntries))
		for _, entry := range unitEntries {
			topics = append(topics, TopicProgressResponse{
				TopicID:       entry.TopicID,
				Title:         entry.Topic.Title,
				Slug:          entry.Topic.Slug,
				Order:         entry.Topic.OrderIndex,
				Completed:     entry.Completed,
				CompletedAt:   util.FromTimePtr(entry.CompletedAt),
				QuizMark:      entry.QuizMark,
				LastAttempted: util.FromTimePtr(entry.LastAttempted),
			})
		}

		unitCompleted := UnitCompleted(unitEntries)
		if unitCompleted {
			completedWeeks++
		}

		units = append(units, UnitProgressResponse{
			UnitID:    unit.ID,
			Title:     unit.Title,
			Slug:      unit.Slug,
			Order:     unit.OrderIndex,
			Completed: unitCompleted,
			Topics:    topics,
		})
	}

	return &ProgressResponse{
		EnrollmentID:   e.ID,
		Curriculum:     curriculum.Summarize(&e.Curriculum),
		Progress:       e.Progress,
		Completed:      e.Completed,
		CompletedWeeks: completedWeeks,
		EnrolledAt:     util.LocalDateTime{Time: e.EnrolledAt},
		Units:          units,
	}, nil
}
