package review

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"github.com/saulo-duarte/mentora-lambda/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClassifier struct {
	mu        sync.Mutex
	calls     int
	sentiment string
	label     string
	err       error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sentiment, f.label, f.err
}

func (f *fakeClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type reviewFixture struct {
	db         *gorm.DB
	service    ReviewService
	classifier *fakeClassifier
	learner    *user.User
	curriculum *curriculum.Curriculum
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&curriculum.Curriculum{},
		&curriculum.SyllabusUnit{},
		&curriculum.Topic{},
		&curriculum.Resource{},
		&enrollment.Enrollment{},
		&enrollment.ProgressEntry{},
		&Review{},
	))

	u := &user.User{
		ID:    uuid.New(),
		Name:  "Learner",
		Email: uuid.NewString() + "@example.com",
		Role:  "learner",
	}
	require.NoError(t, db.Create(u).Error)

	c := &curriculum.Curriculum{
		Name:        "Review Curriculum " + uuid.NewString(),
		Slug:        "review-curriculum-" + uuid.NewString(),
		Description: "desc",
		Difficulty:  curriculum.BEGINNER,
	}
	require.NoError(t, db.Create(c).Error)

	require.NoError(t, db.Create(&enrollment.Enrollment{
		ID:           uuid.New(),
		UserID:       u.ID,
		CurriculumID: c.ID,
	}).Error)

	classifier := &fakeClassifier{sentiment: SentimentPositive, label: LabelContent}
	service := NewService(
		db,
		NewRepository(db),
		enrollment.NewRepository(db),
		curriculum.NewRepository(db),
		classifier,
	)

	return &reviewFixture{
		db:         db,
		service:    service,
		classifier: classifier,
		learner:    u,
		curriculum: c,
	}
}

func (f *reviewFixture) ctx() context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: f.learner.ID.String(),
		Role:   f.learner.Role,
	})
}

func (f *reviewFixture) waitForClassification(t *testing.T, reviewID uuid.UUID) *Review {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var r Review
		require.NoError(t, f.db.First(&r, "id = ?", reviewID).Error)
		if r.Sentiment != "" {
			return &r
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("classification never landed")
	return nil
}

func TestCreateReview(t *testing.T) {
	t.Run("StoresAndRefreshesAggregateRating", func(t *testing.T) {
		f := newReviewFixture(t)

		r, err := f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{
			Rating: 4,
			Review: "Solid material, exercises could be harder.",
		})
		require.NoError(t, err)
		assert.Equal(t, 4, r.Rating)

		var c curriculum.Curriculum
		require.NoError(t, f.db.First(&c, "id = ?", f.curriculum.ID).Error)
		assert.Equal(t, 4.0, c.Rating)

		stored := f.waitForClassification(t, r.ID)
		assert.Equal(t, SentimentPositive, stored.Sentiment)
		assert.Equal(t, LabelContent, stored.Label)
	})

	t.Run("AverageOverSeveralReviews", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 5, Review: "great"})
		require.NoError(t, err)
		_, err = f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 2, Review: "meh"})
		require.NoError(t, err)

		var c curriculum.Curriculum
		require.NoError(t, f.db.First(&c, "id = ?", f.curriculum.ID).Error)
		assert.InDelta(t, 3.5, c.Rating, 0.001)
	})

	t.Run("ClassifierFailureDoesNotFailTheReview", func(t *testing.T) {
		f := newReviewFixture(t)
		f.classifier.err = fmt.Errorf("inference service down")

		r, err := f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{
			Rating: 3,
			Review: "fine",
		})
		require.NoError(t, err)

		deadline := time.Now().Add(time.Second)
		for f.classifier.callCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		require.NotZero(t, f.classifier.callCount())

		var stored Review
		require.NoError(t, f.db.First(&stored, "id = ?", r.ID).Error)
		assert.Empty(t, stored.Sentiment)
		assert.Empty(t, stored.Label)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 0, Review: "x"})
		assert.ErrorIs(t, err, ErrInvalidReview)

		_, err = f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 6, Review: "x"})
		assert.ErrorIs(t, err, ErrInvalidReview)

		_, err = f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 3, Review: "   "})
		assert.ErrorIs(t, err, ErrInvalidReview)
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		f := newReviewFixture(t)
		stranger := &user.User{ID: uuid.New(), Name: "Other", Email: uuid.NewString() + "@example.com", Role: "learner"}
		require.NoError(t, f.db.Create(stranger).Error)

		ctx := auth.ContextWithClaims(context.Background(), &auth.UserClaims{
			UserID: stranger.ID.String(),
			Role:   stranger.Role,
		})
		_, err := f.service.CreateReview(ctx, f.curriculum.Slug, CreateReviewDTO{Rating: 5, Review: "x"})
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("UnknownCurriculum", func(t *testing.T) {
		f := newReviewFixture(t)
		_, err := f.service.CreateReview(f.ctx(), "no-such-curriculum", CreateReviewDTO{Rating: 5, Review: "x"})
		assert.ErrorIs(t, err, ErrCurriculumNotFound)
	})
}

func TestListByCurriculum(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateReview(f.ctx(), f.curriculum.Slug, CreateReviewDTO{Rating: 5, Review: "great"})
	require.NoError(t, err)

	reviews, err := f.service.ListByCurriculum(f.ctx(), f.curriculum.Slug)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	t.Run("UnknownCurriculum", func(t *testing.T) {
		_, err := f.service.ListByCurriculum(f.ctx(), "no-such-curriculum")
		assert.ErrorIs(t, err, ErrCurriculumNotFound)
	})
}
