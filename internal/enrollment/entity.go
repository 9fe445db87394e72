package enrollment

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/user"
	"gorm.io/gorm"
)

type Enrollment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_curriculum" json:"user_id"`
	CurriculumID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_curriculum" json:"curriculum_id"`
	EnrolledAt   time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
	Progress     int       `gorm:"not null;default:0" json:"progress"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`

	User       user.User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Curriculum curriculum.Curriculum `gorm:"foreignKey:CurriculumID;constraint:OnDelete:CASCADE" json:"-"`

	Entries []ProgressEntry `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ProgressEntry is the ledger: one row per (enrollment, unit, topic),
// created eagerly at enrollment time. The triple never changes; the
// completion and quiz fields do.
type ProgressEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_progress_enrollment_topic" json:"enrollment_id"`
	SyllabusUnitID uuid.UUID  `gorm:"type:uuid;not null;index" json:"syllabus_unit_id"`
	TopicID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_enrollment_topic" json:"topic_id"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	QuizMark       float64    `gorm:"not null;default:0" json:"quiz_mark"`
	LastAttempted  *time.Time `json:"last_attempted,omitempty"`

	SyllabusUnit curriculum.SyllabusUnit `gorm:"foreignKey:SyllabusUnitID;constraint:OnDelete:CASCADE" json:"-"`
	Topic        curriculum.Topic        `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *ProgressEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
