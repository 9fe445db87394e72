package curriculum

import (
	"context"
	"errors"
	"strings"

	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"gorm.io/gorm"
)

var (
	ErrCurriculumNotFound = errors.New("curriculum not found")
	ErrUnitNotFound       = errors.New("syllabus unit not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
)

type CurriculumService interface {
	List(ctx context.Context, search string) ([]*CurriculumSummary, error)
	Get(ctx context.Context, slug string) (*Curriculum, error)
	Create(ctx context.Context, dto CreateCurriculumDTO) (*Curriculum, error)
	AddUnit(ctx context.Context, curriculumSlug string, dto CreateUnitDTO) (*SyllabusUnit, error)
	AddTopic(ctx context.Context, unitSlug string, dto CreateTopicDTO) (*Topic, error)
	AddResource(ctx context.Context, topicSlug string, dto CreateResourceDTO) (*Resource, error)
}

type curriculumService struct {
	repo CurriculumRepository
	db   *gorm.DB
}

func NewService(db *gorm.DB, repo CurriculumRepository) CurriculumService {
	return &curriculumService{repo: repo, db: db}
}

func (s *curriculumService) List(ctx context.Context, search string) ([]*CurriculumSummary, error) {
	log := config.WithContext(ctx)

	curricula, err := s.repo.List(search)
	if err != nil {
		log.WithError(err).Error("Failed to list curricula")
		return nil, err
	}

	summaries := make([]*CurriculumSummary, 0, len(curricula))
	for _, c := range curricula {
		summaries = append(summaries, Summarize(c))
	}
	return summaries, nil
}

func (s *curriculumService) Get(ctx context.Context, slug string) (*Curriculum, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.GetBySlug(slug)
	if err != nil {
		log.WithError(err).Error("Failed to load curriculum")
		return nil, err
	}
	if c == nil {
		return nil, ErrCurriculumNotFound
	}
	return c, nil
}

func (s *curriculumService) Create(ctx context.Context, dto CreateCurriculumDTO) (*Curriculum, error) {
	log := config.WithContext(ctx)

	if err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Name) == "" || strings.TrimSpace(dto.Description) == "" {
		return nil, ErrInvalidInput
	}
	if !dto.Difficulty.IsValid() {
		return nil, ErrInvalidInput
	}

	slug, err := UniqueSlug(Slugify(dto.Name), func(candidate string) (bool, error) {
		return s.repo.SlugTaken(&Curriculum{}, candidate)
	})
	if err != nil {
		return nil, err
	}

	c := &Curriculum{
		Name:          dto.Name,
		Slug:          slug,
		Description:   dto.Description,
		Objective:     dto.Objective,
		Prerequisites: dto.Prerequisites,
		Difficulty:    dto.Difficulty,
	}

	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		log.WithError(err).Error("Failed to create curriculum")
		return nil, err
	}

	log.WithField("curriculum_id", c.ID).Info("Curriculum created")
	return c, nil
}

func (s *curriculumService) AddUnit(ctx context.Context, curriculumSlug string, dto CreateUnitDTO) (*SyllabusUnit, error) {
	log := config.WithContext(ctx)

	if err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidInput
	}

	c, err := s.repo.GetBySlug(curriculumSlug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCurriculumNotFound
	}

	slug, err := UniqueSlug(Slugify(dto.Title), func(candidate string) (bool, error) {
		return s.repo.SlugTaken(&SyllabusUnit{}, candidate)
	})
	if err != nil {
		return nil, err
	}

	unit := &SyllabusUnit{
		CurriculumID: c.ID,
		Title:        dto.Title,
		Slug:         slug,
		Description:  dto.Description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		max, err := s.repo.MaxUnitOrder(tx, c.ID)
		if err != nil {
			return err
		}
		unit.OrderIndex = ResolveOrder(dto.Order, max)
		return tx.Create(unit).Error
	})
	if err != nil {
		log.WithError(err).Error("Failed to create syllabus unit")
		return nil, err
	}

	log.WithField("unit_id", unit.ID).Info("Syllabus unit created")
	return unit, nil
}

func (s *curriculumService) AddTopic(ctx context.Context, unitSlug string, dto CreateTopicDTO) (*Topic, error) {
	log := config.WithContext(ctx)

	if err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Title) == "" {
		return nil, ErrInvalidInput
	}

	unit, err := s.repo.GetUnitBySlug(unitSlug)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}

	slug, err := UniqueSlug(Slugify(dto.Title), func(candidate string) (bool, error) {
		return s.repo.SlugTaken(&Topic{}, candidate)
	})
	if err != nil {
		return nil, err
	}

	topic := &Topic{
		SyllabusUnitID: unit.ID,
		Title:          dto.Title,
		Slug:           slug,
		Description:    dto.Description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		max, err := s.repo.MaxTopicOrder(tx, unit.ID)
		if err != nil {
			return err
		}
		topic.OrderIndex = ResolveOrder(dto.Order, max)
		return tx.Create(topic).Error
	})
	if err != nil {
		log.WithError(err).Error("Failed to create topic")
		return nil, err
	}

	log.WithField("topic_id", topic.ID).Info("Topic created")
	return topic, nil
}

func (s *curriculumService) AddResource(ctx context.Context, topicSlug string, dto CreateResourceDTO) (*Resource, error) {
	log := config.WithContext(ctx)

	if err := requireAuthor(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.URL) == "" {
		return nil, ErrInvalidInput
	}

	topic, err := s.repo.GetTopicBySlug(topicSlug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	resource := &Resource{
		TopicID: topic.ID,
		Title:   dto.Title,
		URL:     dto.URL,
		Kind:    dto.Kind,
	}

	if err := s.db.WithContext(ctx).Create(resource).Error; err != nil {
		log.WithError(err).Error("Failed to create resource")
		return nil, err
	}
	return resource, nil
}

func requireAuthor(ctx context.Context) error {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return ErrForbidden
	}
	if claims.Role != "admin" {
		return ErrForbidden
	}
	return nil
}
