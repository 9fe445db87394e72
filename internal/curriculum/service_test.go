package curriculum

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openCurriculumDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Curriculum{},
		&SyllabusUnit{},
		&Topic{},
		&Resource{},
	))
	return db
}

func adminContext() context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: uuid.NewString(),
		Role:   "admin",
	})
}

func learnerContext() context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: uuid.NewString(),
		Role:   "learner",
	})
}

func TestCreateCurriculum(t *testing.T) {
	t.Run("SlugDerivedFromName", func(t *testing.T) {
		db := openCurriculumDB(t)
		service := NewService(db, NewRepository(db))

		c, err := service.Create(adminContext(), CreateCurriculumDTO{
			Name:        "Linear Algebra",
			Description: "Vectors and matrices",
			Difficulty:  BEGINNER,
		})
		require.NoError(t, err)
		assert.Equal(t, "linear-algebra", c.Slug)
	})

	t.Run("DuplicateNameGetsSuffixedSlug", func(t *testing.T) {
		db := openCurriculumDB(t)
		service := NewService(db, NewRepository(db))

		first, err := service.Create(adminContext(), CreateCurriculumDTO{
			Name:        "Calculus",
			Description: "d",
			Difficulty:  BEGINNER,
		})
		require.NoError(t, err)
		require.Equal(t, "calculus", first.Slug)

		// Name collides on the unique index, but a differently cased
		// variant still needs a distinct slug.
		second, err := service.Create(adminContext(), CreateCurriculumDTO{
			Name:        "CALCULUS",
			Description: "d",
			Difficulty:  BEGINNER,
		})
		require.NoError(t, err)
		assert.Equal(t, "calculus-2", second.Slug)
	})

	t.Run("LearnerIsForbidden", func(t *testing.T) {
		db := openCurriculumDB(t)
		service := NewService(db, NewRepository(db))

		_, err := service.Create(learnerContext(), CreateCurriculumDTO{
			Name:        "Nope",
			Description: "d",
			Difficulty:  BEGINNER,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("InvalidDifficulty", func(t *testing.T) {
		db := openCurriculumDB(t)
		service := NewService(db, NewRepository(db))

		_, err := service.Create(adminContext(), CreateCurriculumDTO{
			Name:        "X",
			Description: "d",
			Difficulty:  Difficulty("EXPERT"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAddUnit(t *testing.T) {
	db := openCurriculumDB(t)
	service := NewService(db, NewRepository(db))

	c, err := service.Create(adminContext(), CreateCurriculumDTO{
		Name:        "Go Basics",
		Description: "d",
		Difficulty:  BEGINNER,
	})
	require.NoError(t, err)

	t.Run("UnsetOrderAppends", func(t *testing.T) {
		u1, err := service.AddUnit(adminContext(), c.Slug, CreateUnitDTO{Title: "Syntax", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, 1, u1.OrderIndex)

		u2, err := service.AddUnit(adminContext(), c.Slug, CreateUnitDTO{Title: "Types", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, 2, u2.OrderIndex)
	})

	t.Run("ExplicitOrderIsKept", func(t *testing.T) {
		u, err := service.AddUnit(adminContext(), c.Slug, CreateUnitDTO{Title: "Interfaces", Description: "d", Order: 10})
		require.NoError(t, err)
		assert.Equal(t, 10, u.OrderIndex)

		// The next unset order continues after the explicit one.
		next, err := service.AddUnit(adminContext(), c.Slug, CreateUnitDTO{Title: "Generics", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, 11, next.OrderIndex)
	})

	t.Run("UnknownCurriculum", func(t *testing.T) {
		_, err := service.AddUnit(adminContext(), "no-such-curriculum", CreateUnitDTO{Title: "X"})
		assert.ErrorIs(t, err, ErrCurriculumNotFound)
	})
}

func TestAddTopic(t *testing.T) {
	db := openCurriculumDB(t)
	service := NewService(db, NewRepository(db))

	c, err := service.Create(adminContext(), CreateCurriculumDTO{
		Name:        "Databases",
		Description: "d",
		Difficulty:  INTERMEDIATE,
	})
	require.NoError(t, err)

	unit, err := service.AddUnit(adminContext(), c.Slug, CreateUnitDTO{Title: "Indexing", Description: "d"})
	require.NoError(t, err)

	t1, err := service.AddTopic(adminContext(), unit.Slug, CreateTopicDTO{Title: "B-Trees", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, 1, t1.OrderIndex)
	assert.Equal(t, "b-trees", t1.Slug)

	t2, err := service.AddTopic(adminContext(), unit.Slug, CreateTopicDTO{Title: "Hash Indexes", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, 2, t2.OrderIndex)

	t.Run("UnknownUnit", func(t *testing.T) {
		_, err := service.AddTopic(adminContext(), "no-such-unit", CreateTopicDTO{Title: "X"})
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("ResourceUnderTopic", func(t *testing.T) {
		r, err := service.AddResource(adminContext(), t1.Slug, CreateResourceDTO{
			Title: "Paper",
			URL:   "https://example.com/btrees.pdf",
			Kind:  "article",
		})
		require.NoError(t, err)
		assert.Equal(t, t1.ID, r.TopicID)

		full, err := service.Get(context.Background(), c.Slug)
		require.NoError(t, err)
		require.Len(t, full.Syllabus, 1)
		require.Len(t, full.Syllabus[0].Topics, 2)
		assert.Len(t, full.Syllabus[0].Topics[0].Resources, 1)
	})
}

func TestListCurricula(t *testing.T) {
	db := openCurriculumDB(t)
	service := NewService(db, NewRepository(db))

	for _, name := range []string{"Linear Algebra", "Abstract Algebra", "Statistics"} {
		_, err := service.Create(adminContext(), CreateCurriculumDTO{
			Name:        name,
			Description: "d",
			Difficulty:  BEGINNER,
		})
		require.NoError(t, err)
	}

	all, err := service.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := service.List(context.Background(), "algebra")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}
