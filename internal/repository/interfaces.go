package repository

import (
	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
)

// GuestbookRepositoryInterface defines the contract for guestbook repository operations
type GuestbookRepositoryInterface interface {
	Create(guestbook *models.Guestbook) error
	FindByID(id string) (*models.Guestbook, error)
	Save(guestbook *models.Guestbook) error
}

// FootprintRepositoryInterface defines the contract for footprint repository operations
type FootprintRepositoryInterface interface {
	// CreateWithGuestbook persists the footprint and the guestbook's unread
	// flag in a single transaction.
	CreateWithGuestbook(footprint *models.Footprint, guestbook *models.Guestbook) error
	FindByID(id uint) (*models.Footprint, error)
	MarkChecked(id uint) error
	SetPhotoKey(id uint, key string) error
	Delete(footprint *models.Footprint) error
	// PageByGuestbook returns one page newest-first plus slice boundary flags.
	PageByGuestbook(guestbookID string, page, size int) ([]models.Footprint, bool, bool, error)
}
