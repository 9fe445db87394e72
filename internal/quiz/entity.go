package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Question string    `gorm:"type:text;not null" json:"question"`

	Topic   curriculum.Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
	Options []Option         `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Option     string    `gorm:"type:text;not null" json:"option"`
	// Reason and IsCorrect never leave the server on quiz reads; the
	// reason comes back only in submission results.
	Reason    string `gorm:"type:text" json:"-"`
	IsCorrect bool   `gorm:"not null;default:false" json:"-"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Attempt is the audit record of one scored submission.
type Attempt struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProgressEntryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"progress_entry_id"`
	Mark            float64        `gorm:"not null" json:"mark"`
	Selections      datatypes.JSON `gorm:"type:jsonb;not null" json:"selections"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`

	ProgressEntry enrollment.ProgressEntry `gorm:"foreignKey:ProgressEntryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
