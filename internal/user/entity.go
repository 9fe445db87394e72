package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url,omitempty"`
	Provider  string    `gorm:"type:text;not null;default:'google'" json:"-"`
	// Google refresh token, encrypted at rest.
	ProviderToken string `gorm:"type:text" json:"-"`
	Role      string    `gorm:"type:text;not null;default:'learner'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
