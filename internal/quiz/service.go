package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/gorm"
)

var (
	ErrProgressEntryNotFound   = enrollment.ErrProgressEntryNotFound
	ErrTopicNotFound           = curriculum.ErrTopicNotFound
	ErrQuestionNotFound        = errors.New("question not found")
	ErrInvalidAnswerFormat     = errors.New("invalid answer format")
	ErrUnknownQuestionOrOption = errors.New("question or option does not belong to this topic")
	ErrCooldownActive          = errors.New("quiz retake cooldown is active")
	ErrUnauthorized            = enrollment.ErrUnauthorized
	ErrForbidden               = curriculum.ErrForbidden
)

// CooldownError carries the seconds left until the quiz may be retaken.
// errors.Is(err, ErrCooldownActive) matches it.
type CooldownError struct {
	RemainingSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("quiz retake available in %d seconds", e.RemainingSeconds)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

type QuizService interface {
	GetTopicQuiz(ctx context.Context, topicSlug string) (*TopicQuizResponse, error)
	GetState(ctx context.Context, topicSlug string) (*QuizStateResponse, error)
	ListAttempts(ctx context.Context, topicSlug string) ([]*Attempt, error)
	SubmitAnswers(ctx context.Context, topicSlug string, answers map[string]string) (*SubmissionResponse, error)

	CreateQuestion(ctx context.Context, topicSlug string, dto CreateQuestionDTO) (*Question, error)
	RemoveQuestion(ctx context.Context, questionID string) error
}

type quizService struct {
	repo           QuizRepository
	entries        enrollment.EnrollmentRepository
	aggregator     *enrollment.Aggregator
	curriculumRepo curriculum.CurriculumRepository
	db             *gorm.DB
	retryInterval  int
	now            func() time.Time
}

func NewService(
	db *gorm.DB,
	repo QuizRepository,
	entries enrollment.EnrollmentRepository,
	aggregator *enrollment.Aggregator,
	curriculumRepo curriculum.CurriculumRepository,
	retryInterval int,
) QuizService {
	return &quizService{
		repo:           repo,
		entries:        entries,
		aggregator:     aggregator,
		curriculumRepo: curriculumRepo,
		db:             db,
		retryInterval:  retryInterval,
		now:            time.Now,
	}
}

func (s *quizService) GetTopicQuiz(ctx context.Context, topicSlug string) (*TopicQuizResponse, error) {
	log := config.WithContext(ctx)

	state, entry, err := s.loadState(ctx, topicSlug)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.ListQuestionsByTopic(s.db.WithContext(ctx), entry.TopicID)
	if err != nil {
		log.WithError(err).Error("Failed to list quiz questions")
		return nil, err
	}

	return &TopicQuizResponse{
		Questions:         questions,
		QuizStateResponse: *state,
	}, nil
}

func (s *quizService) GetState(ctx context.Context, topicSlug string) (*QuizStateResponse, error) {
	state, _, err := s.loadState(ctx, topicSlug)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// ListAttempts returns the caller's attempt history for a topic, newest first.
func (s *quizService) ListAttempts(ctx context.Context, topicSlug string) ([]*Attempt, error) {
	_, entry, err := s.loadState(ctx, topicSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAttemptsByEntry(entry.ID)
}

// SubmitAnswers scores one quiz submission. The ledger row is locked for
// the duration of the transaction so a concurrent duplicate submission
// observes CooldownActive instead of overwriting a fresher result.
func (s *quizService) SubmitAnswers(ctx context.Context, topicSlug string, answers map[string]string) (*SubmissionResponse, error) {
	log := config.WithContext(ctx)

	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	var response *SubmissionResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Precondition order matters: a missing ledger row wins over an
		// active cooldown, which wins over a malformed submission.
		entry, err := s.entries.GetEntryByUserAndTopicSlug(tx, userID, topicSlug, true)
		if err != nil {
			return err
		}
		if entry == nil {
			return ErrProgressEntryNotFound
		}

		if remaining := s.remainingCooldown(entry); remaining > 0 {
			return &CooldownError{RemainingSeconds: remaining}
		}

		parsed, err := parseAnswers(answers)
		if err != nil {
			return err
		}

		questions, err := s.repo.ListQuestionsByTopic(tx, entry.TopicID)
		if err != nil {
			return err
		}

		results, correct, err := score(questions, parsed)
		if err != nil {
			return err
		}

		mark := roundMark(correct, len(parsed))
		now := s.now()

		entry.QuizMark = mark
		entry.LastAttempted = &now
		entry.Completed = true
		if entry.CompletedAt == nil {
			entry.CompletedAt = &now
		}
		if err := s.entries.SaveEntry(tx, entry); err != nil {
			return err
		}

		selections, err := json.Marshal(results)
		if err != nil {
			return err
		}
		if err := s.repo.CreateAttempt(tx, &Attempt{
			ID:              uuid.New(),
			ProgressEntryID: entry.ID,
			Mark:            mark,
			Selections:      selections,
		}); err != nil {
			return err
		}

		if _, _, err := s.aggregator.RecomputeTx(tx, entry.EnrollmentID); err != nil {
			return err
		}

		response = &SubmissionResponse{
			Results:             results,
			Mark:                mark,
			NextCooldownSeconds: s.retryInterval,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCooldownActive) {
			log.WithField("topic", topicSlug).Warn("Quiz submission rejected: cooldown active")
		}
		return nil, err
	}

	log.WithField("topic", topicSlug).WithField("mark", response.Mark).Info("Quiz submission scored")
	return response, nil
}

func (s *quizService) CreateQuestion(ctx context.Context, topicSlug string, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if dto.Question == "" || len(dto.Options) < 2 {
		return nil, ErrInvalidAnswerFormat
	}

	topic, err := s.curriculumRepo.GetTopicBySlug(topicSlug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	q := &Question{
		ID:       uuid.New(),
		TopicID:  topic.ID,
		Question: dto.Question,
	}
	for _, opt := range dto.Options {
		q.Options = append(q.Options, Option{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Option:     opt.Option,
			Reason:     opt.Reason,
			IsCorrect:  opt.IsCorrect,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.CreateQuestion(tx, q)
	})
	if err != nil {
		log.WithError(err).Error("Failed to create quiz question")
		return nil, err
	}

	log.WithField("question_id", q.ID).Info("Quiz question created")
	return q, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, questionID string) error {
	log := config.WithContext(ctx)

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	id, err := uuid.Parse(questionID)
	if err != nil {
		return ErrQuestionNotFound
	}

	if err := s.repo.DeleteQuestion(id); err != nil {
		log.WithError(err).Error("Failed to remove quiz question")
		return err
	}
	return nil
}

func (s *quizService) loadState(ctx context.Context, topicSlug string) (*QuizStateResponse, *enrollment.ProgressEntry, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.entries.GetEntryByUserAndTopicSlug(s.db.WithContext(ctx), userID, topicSlug, false)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return nil, nil, ErrProgressEntryNotFound
	}

	return &QuizStateResponse{
		Completed:                entry.Completed,
		Mark:                     entry.QuizMark,
		RemainingCooldownSeconds: s.remainingCooldown(entry),
	}, entry, nil
}

func (s *quizService) remainingCooldown(entry *enrollment.ProgressEntry) int {
	if entry.LastAttempted == nil {
		return 0
	}
	elapsed := int(s.now().Sub(*entry.LastAttempted).Seconds())
	if remaining := s.retryInterval - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

func (s *quizService) userID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *quizService) requireAdmin(ctx context.Context) error {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return ErrUnauthorized
	}
	if claims.Role != "admin" {
		return ErrForbidden
	}
	return nil
}

func parseAnswers(answers map[string]string) (map[uuid.UUID]uuid.UUID, error) {
	if len(answers) == 0 {
		return nil, ErrInvalidAnswerFormat
	}

	parsed := make(map[uuid.UUID]uuid.UUID, len(answers))
	for questionID, optionID := range answers {
		qid, err := uuid.Parse(questionID)
		if err != nil {
			return nil, ErrInvalidAnswerFormat
		}
		oid, err := uuid.Parse(optionID)
		if err != nil {
			return nil, ErrInvalidAnswerFormat
		}
		parsed[qid] = oid
	}
	return parsed, nil
}

// score resolves every submitted pair against the topic's question bank.
// The denominator is the number of submitted pairs, not the bank size.
func score(questions []*Question, parsed map[uuid.UUID]uuid.UUID) (map[string]AnswerResult, int, error) {
	optionsByQuestion := make(map[uuid.UUID]map[uuid.UUID]*Option, len(questions))
	for _, q := range questions {
		opts := make(map[uuid.UUID]*Option, len(q.Options))
		for i := range q.Options {
			opts[q.Options[i].ID] = &q.Options[i]
		}
		optionsByQuestion[q.ID] = opts
	}

	results := make(map[string]AnswerResult, len(parsed))
	correct := 0
	for qid, oid := range parsed {
		opts, ok := optionsByQuestion[qid]
		if !ok {
			return nil, 0, ErrUnknownQuestionOrOption
		}
		opt, ok := opts[oid]
		if !ok {
			return nil, 0, ErrUnknownQuestionOrOption
		}

		if opt.IsCorrect {
			correct++
		}
		results[qid.String()] = AnswerResult{
			Selected:  oid,
			IsCorrect: opt.IsCorrect,
			Reason:    opt.Reason,
		}
	}
	return results, correct, nil
}

func roundMark(correct, total int) float64 {
	return math.Round(10000*float64(correct)/float64(total)) / 100
}
