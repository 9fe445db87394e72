package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"gorm.io/gorm"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Labels the classifier may assign to a review.
const (
	LabelContent    = "course_content"
	LabelExercises  = "exercises"
	LabelStructure  = "course_structure"
	LabelExperience = "learning_experience"
	LabelSupport    = "support"
)

// Review is tied to an enrollment, not directly to a user, so only
// enrolled learners can leave one. Sentiment and Label stay empty until
// the classifier fills them in after the fact.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"enrollment_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Review       string    `gorm:"type:text;not null" json:"review"`
	Sentiment    string    `gorm:"type:text" json:"sentiment,omitempty"`
	Label        string    `gorm:"type:text" json:"label,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Enrollment enrollment.Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
