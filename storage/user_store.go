package storage

import (
	"errors"

	"github.com/AhmedHajAhmed/Homi/models"

	"gorm.io/gorm"
)

// UserStore persists users. Lookups return (nil, nil) when no row matches.
type UserStore interface {
	Create(u *models.User) error
	ByID(id uint) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	Save(u *models.User) error
}

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) Create(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *userStore) ByID(id uint) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userStore) ByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userStore) Save(u *models.User) error {
	return s.db.Save(u).Error
}
