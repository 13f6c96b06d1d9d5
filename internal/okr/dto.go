package okr

import (
	"time"

	"github.com/google/uuid"
)

type KeyResultDTO struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Current     string `json:"current"`
}

type CreateOKRDTO struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Objective   string         `json:"objective"`
	Quarter     Quarter        `json:"quarter"`
	Year        int            `json:"year"`
	KeyResults  []KeyResultDTO `json:"key_results"`
}

// UpdateOKRDTO carries the full record; the edit form always submits every
// field and the row is written in one atomic update.
type UpdateOKRDTO struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Objective   string         `json:"objective"`
	Quarter     Quarter        `json:"quarter"`
	Year        int            `json:"year"`
	Status      Status         `json:"status"`
	Progress    int            `json:"progress"`
	KeyResults  []KeyResultDTO `json:"key_results"`
}

type OKRResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Objective   string         `json:"objective"`
	Quarter     Quarter        `json:"quarter"`
	Year        int            `json:"year"`
	Status      Status         `json:"status"`
	Progress    int            `json:"progress"`
	KeyResults  []KeyResultDTO `json:"key_results"`
	UserID      uuid.UUID      `json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
