package okr

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/okrhub/okrhub-lambda/internal/user"
)

// KeyResult rows live inside the okrs row as an ordered jsonb array; order
// is significant and preserved.
type KeyResult struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Current     string `json:"current"`
}

type OKR struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User        user.User                      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title       string                         `gorm:"type:text;not null" json:"title"`
	Description string                         `gorm:"type:text" json:"description,omitempty"`
	Objective   string                         `gorm:"type:text;not null" json:"objective"`
	Quarter     Quarter                        `gorm:"type:text;not null" json:"quarter"`
	Year        int                            `gorm:"not null;check:year >= 2020 AND year <= 2030" json:"year"`
	Status      Status                         `gorm:"type:text;not null;default:'active'" json:"status"`
	Progress    int                            `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	KeyResults  datatypes.JSONSlice[KeyResult] `gorm:"type:jsonb;not null" json:"key_results"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

func (o *OKR) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
