package enrollment

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same in-memory schema.
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
		&Enrollment{},
		&ProgressEntry{},
	))
	return db
}

func seedCurriculum(t *testing.T, db *gorm.DB, units, topicsPerUnit int) *curriculum.Curriculum {
	t.Helper()

	c := &curriculum.Curriculum{
		Name:        "Test Curriculum " + uuid.NewString(),
		Slug:        "test-curriculum-" + uuid.NewString(),
		Description: "desc",
		Difficulty:  curriculum.BEGINNER,
	}
	for i := 0; i < units; i++ {
		unit := curriculum.SyllabusUnit{
			OrderIndex:  i + 1,
			Title:       "Unit",
			Slug:        "unit-" + uuid.NewString(),
			Description: "desc",
		}
		for j := 0; j < topicsPerUnit; j++ {
			unit.Topics = append(unit.Topics, curriculum.Topic{
				OrderIndex:  j + 1,
				Title:       "Topic",
				Slug:        "topic-" + uuid.NewString(),
				Description: "desc",
			})
		}
		c.Syllabus = append(c.Syllabus, unit)
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedUser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()

	u := &user.User{
		ID:    uuid.New(),
		Name:  "Learner",
		Email: uuid.NewString() + "@example.com",
		Role:  "learner",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func learnerContext(u *user.User) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: u.ID.String(),
		Role:   u.Role,
	})
}

func newTestService(db *gorm.DB) (EnrollmentService, EnrollmentRepository, *Aggregator) {
	repo := NewRepository(db)
	aggregator := NewAggregator()
	service := NewService(db, repo, curriculum.NewRepository(db), aggregator)
	return service, repo, aggregator
}

// staleReadRepo reports no existing enrollment, the way a concurrent
// enroll that has not committed yet would look to the existence check.
type staleReadRepo struct {
	EnrollmentRepository
}

func (r staleReadRepo) GetByUserAndCurriculum(userID, curriculumID uuid.UUID) (*Enrollment, error) {
	return nil, nil
}

func TestEnroll(t *testing.T) {
	t.Run("FansOutOneEntryPerTopic", func(t *testing.T) {
		db := openTestDB(t)
		c := seedCurriculum(t, db, 3, 4)
		u := seedUser(t, db)
		service, repo, _ := newTestService(db)

		e, err := service.Enroll(learnerContext(u), c.Slug)
		require.NoError(t, err)

		entries, err := repo.ListEntries(e.ID)
		require.NoError(t, err)
		assert.Len(t, entries, 12)

		for _, entry := range entries {
			assert.False(t, entry.Completed)
			assert.Nil(t, entry.CompletedAt)
			assert.Zero(t, entry.QuizMark)
		}
	})

	t.Run("IncrementsEnrolledCounter", func(t *testing.T) {
		db := openTestDB(t)
		c := seedCurriculum(t, db, 1, 1)
		u := seedUser(t, db)
		service, _, _ := newTestService(db)

		_, err := service.Enroll(learnerContext(u), c.Slug)
		require.NoError(t, err)

		var reloaded curriculum.Curriculum
		require.NoError(t, db.First(&reloaded, "id = ?", c.ID).Error)
		assert.Equal(t, 1, reloaded.Enrolled)
	})

	t.Run("SecondEnrollIsRejected", func(t *testing.T) {
		db := openTestDB(t)
		c := seedCurriculum(t, db, 1, 1)
		u := seedUser(t, db)
		service, _, _ := newTestService(db)

		_, err := service.Enroll(learnerContext(u), c.Slug)
		require.NoError(t, err)

		_, err = service.Enroll(learnerContext(u), c.Slug)
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("ConcurrentDuplicateMapsToAlreadyEnrolled", func(t *testing.T) {
		db := openTestDB(t)
		c := seedCurriculum(t, db, 1, 1)
		u := seedUser(t, db)

		// The stale read lets Enroll past the existence check so the
		// insert hits the unique index instead.
		service := NewService(db, staleReadRepo{NewRepository(db)}, curriculum.NewRepository(db), NewAggregator())

		require.NoError(t, db.Create(&Enrollment{
			ID:           uuid.New(),
			UserID:       u.ID,
			CurriculumID: c.ID,
		}).Error)

		_, err := service.Enroll(learnerContext(u), c.Slug)
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("UnknownCurriculum", func(t *testing.T) {
		db := openTestDB(t)
		u := seedUser(t, db)
		service, _, _ := newTestService(db)

		_, err := service.Enroll(learnerContext(u), "does-not-exist")
		assert.ErrorIs(t, err, ErrCurriculumNotFound)
	})

	t.Run("MissingClaims", func(t *testing.T) {
		db := openTestDB(t)
		c := seedCurriculum(t, db, 1, 1)
		service, _, _ := newTestService(db)

		_, err := service.Enroll(context.Background(), c.Slug)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAggregatorRecompute(t *testing.T) {
	db := openTestDB(t)
	c := seedCurriculum(t, db, 2, 2)
	u := seedUser(t, db)
	service, repo, aggregator := newTestService(db)

	e, err := service.Enroll(learnerContext(u), c.Slug)
	require.NoError(t, err)

	entries, err := repo.ListEntries(e.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	complete := func(entry ProgressEntry) {
		entry.Completed = true
		require.NoError(t, db.Save(&entry).Error)
	}

	byUnit := make(map[uuid.UUID][]ProgressEntry)
	for _, entry := range entries {
		byUnit[entry.SyllabusUnitID] = append(byUnit[entry.SyllabusUnitID], entry)
	}
	require.Len(t, byUnit, 2)

	var unitA, unitB []ProgressEntry
	for _, group := range byUnit {
		if unitA == nil {
			unitA = group
		} else {
			unitB = group
		}
	}

	// One topic done: no unit is fully complete yet.
	complete(unitA[0])
	err = db.Transaction(func(tx *gorm.DB) error {
		progress, completed, err := aggregator.RecomputeTx(tx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress)
		assert.False(t, completed)
		return nil
	})
	require.NoError(t, err)

	// First unit fully done.
	complete(unitA[1])
	err = db.Transaction(func(tx *gorm.DB) error {
		progress, completed, err := aggregator.RecomputeTx(tx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, progress)
		assert.False(t, completed)
		return nil
	})
	require.NoError(t, err)

	// Everything done.
	complete(unitB[0])
	complete(unitB[1])
	err = db.Transaction(func(tx *gorm.DB) error {
		progress, completed, err := aggregator.RecomputeTx(tx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, progress)
		assert.True(t, completed)
		return nil
	})
	require.NoError(t, err)

	var reloaded Enrollment
	require.NoError(t, db.First(&reloaded, "id = ?", e.ID).Error)
	assert.Equal(t, 100, reloaded.Progress)
	assert.True(t, reloaded.Completed)
}

func TestGetProgress(t *testing.T) {
	db := openTestDB(t)
	c := seedCurriculum(t, db, 2, 1)
	u := seedUser(t, db)
	service, _, _ := newTestService(db)

	_, err := service.Enroll(learnerContext(u), c.Slug)
	require.NoError(t, err)

	resp, err := service.GetProgress(learnerContext(u), c.Slug)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Progress)
	assert.False(t, resp.Completed)
	assert.Equal(t, 0, resp.CompletedWeeks)
	require.Len(t, resp.Units, 2)
	for _, unit := range resp.Units {
		assert.False(t, unit.Completed)
		assert.Len(t, unit.Topics, 1)
	}

	t.Run("NotEnrolled", func(t *testing.T) {
		other := seedUser(t, db)
		_, err := service.GetProgress(learnerContext(other), c.Slug)
		assert.ErrorIs(t, err, ErrEnrollmentNotFound)
	})
}
