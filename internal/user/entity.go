package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:text" json:"-"`
	Role         string    `gorm:"type:text;not null;default:'user'" json:"role"`

	EncryptedGoogleAccessToken  string `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string `gorm:"type:text" json:"-"`

	ResetTokenHash      string     `gorm:"type:text" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile mirrors the identity fields for display. Rows are provisioned only
// by the user-creation paths (signup, first Google login), never directly.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	FirstName string    `gorm:"type:text" json:"first_name,omitempty"`
	LastName  string    `gorm:"type:text" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
