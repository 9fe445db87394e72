package curriculum

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Curriculum struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Slug          string     `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	Objective     string     `gorm:"type:text" json:"objective,omitempty"`
	Prerequisites string     `gorm:"type:text" json:"prerequisites,omitempty"`
	Difficulty    Difficulty `gorm:"type:text;not null" json:"difficulty"`
	Enrolled      int        `gorm:"not null;default:0" json:"enrolled"`
	Rating        float64    `gorm:"not null;default:0" json:"rating"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Syllabus []SyllabusUnit `gorm:"foreignKey:CurriculumID;constraint:OnDelete:CASCADE" json:"syllabus,omitempty"`
}

func (c *Curriculum) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type SyllabusUnit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CurriculumID uuid.UUID `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	OrderIndex   int       `gorm:"not null" json:"order"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Slug         string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description  string    `gorm:"type:text;not null" json:"description"`

	Topics []Topic `gorm:"foreignKey:SyllabusUnitID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
}

func (u *SyllabusUnit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Topic struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SyllabusUnitID uuid.UUID `gorm:"type:uuid;not null;index" json:"syllabus_unit_id"`
	OrderIndex     int       `gorm:"not null" json:"order"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	Slug           string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description    string    `gorm:"type:text;not null" json:"description"`

	Resources []Resource `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"resources,omitempty"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Resource struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Title   string    `gorm:"type:text;not null" json:"title"`
	URL     string    `gorm:"type:text;not null" json:"url"`
	Kind    string    `gorm:"type:text" json:"kind,omitempty"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
