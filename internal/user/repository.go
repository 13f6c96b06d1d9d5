package user

import (
	"errors"

	"gorm.io/gorm"
)

type UserRepository interface {
	// CreateWithProfile provisions the user row and its profile row in one
	// transaction; the profile exists if and only if the user does.
	CreateWithProfile(u *User, firstName, lastName string) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByResetTokenHash(hash string) (*User, error)
	Update(u *User) error
	GetProfileByUserID(userID string) (*Profile, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(u *User, firstName, lastName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		profile := Profile{
			UserID:    u.ID,
			Email:     u.Email,
			FirstName: firstName,
			LastName:  lastName,
		}
		return tx.Create(&profile).Error
	})
}

func (r *userRepository) GetByID(id string) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByResetTokenHash(hash string) (*User, error) {
	var u User
	if err := r.db.First(&u, "reset_token_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) GetProfileByUserID(userID string) (*Profile, error) {
	var p Profile
	if err := r.db.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
