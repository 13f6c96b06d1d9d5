package okr

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository queries are always scoped by user_id; a row owned by another
// user behaves exactly like a missing row.
type Repository interface {
	Create(o *OKR) error
	FindAllByUserID(userID uuid.UUID) ([]OKR, error)
	FindByIDAndUserID(id, userID uuid.UUID) (*OKR, error)
	Update(o *OKR) error
	Delete(id, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(o *OKR) error {
	return r.db.Create(o).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]OKR, error) {
	var okrs []OKR
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&okrs).Error; err != nil {
		return nil, err
	}
	return okrs, nil
}

func (r *repository) FindByIDAndUserID(id, userID uuid.UUID) (*OKR, error) {
	var o OKR
	if err := r.db.First(&o, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) Update(o *OKR) error {
	res := r.db.Model(&OKR{}).
		Where("id = ? AND user_id = ?", o.ID, o.UserID).
		Select("title", "description", "objective", "quarter", "year", "status", "progress", "key_results").
		Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(id, userID uuid.UUID) error {
	res := r.db.Delete(&OKR{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
