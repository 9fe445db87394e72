package enrollment

import (
	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	util "github.com/saulo-duarte/mentora-lambda/internal/utils"
)

type EnrollDTO struct {
	Curriculum string `json:"curriculum"`
}

type TopicProgressResponse struct {
	TopicID       uuid.UUID           `json:"topic_id"`
	Title         string              `json:"title"`
	Slug          string              `json:"slug"`
	Order         int                 `json:"order"`
	Completed     bool                `json:"completed"`
	CompletedAt   *util.LocalDateTime `json:"completed_at,omitempty"`
	QuizMark      float64             `json:"quiz_mark"`
	LastAttempted *util.LocalDateTime `json:"last_attempted,omitempty"`
}

type UnitProgressResponse struct {
	UnitID    uuid.UUID               `json:"unit_id"`
	Title     string                  `json:"title"`
	Slug      string                  `json:"slug"`
	Order     int                     `json:"order"`
	Completed bool                    `json:"completed"`
	Topics    []TopicProgressResponse `json:"topics"`
}

type ProgressResponse struct {
	EnrollmentID   uuid.UUID                     `json:"enrollment_id"`
	Curriculum     *curriculum.CurriculumSummary `json:"curriculum"`
	Progress       int                           `json:"progress"`
	Completed      bool                          `json:"completed"`
	CompletedWeeks int                           `json:"completed_weeks"`
	EnrolledAt     util.LocalDateTime            `json:"enrolled_at"`
	Units          []UnitProgressResponse        `json:"units"`
}

type EnrollmentSummary struct {
	ID         uuid.UUID                     `json:"id"`
	Curriculum *curriculum.CurriculumSummary `json:"curriculum"`
	Progress   int                           `json:"progress"`
	Completed  bool                          `json:"completed"`
	EnrolledAt util.LocalDateTime            `json:"enrolled_at"`
}
