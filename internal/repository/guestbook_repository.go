package repository

import (
	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"gorm.io/gorm"
)

type GuestbookRepository struct {
	db *gorm.DB
}

func NewGuestbookRepository(db *gorm.DB) *GuestbookRepository {
	return &GuestbookRepository{db: db}
}

func (r *GuestbookRepository) Create(guestbook *models.Guestbook) error {
	return r.db.Create(guestbook).Error
}

func (r *GuestbookRepository) FindByID(id string) (*models.Guestbook, error) {
	var guestbook models.Guestbook
	err := r.db.First(&guestbook, "id = ?", id).Error
	return &guestbook, err
}

func (r *GuestbookRepository) Save(guestbook *models.Guestbook) error {
	return r.db.Save(guestbook).Error
}
