package repository

import (
	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"gorm.io/gorm"
)

type FootprintRepository struct {
	db *gorm.DB
}

func NewFootprintRepository(db *gorm.DB) *FootprintRepository {
	return &FootprintRepository{db: db}
}

// CreateWithGuestbook persists a new footprint and flips the guestbook's
// unread flag. Both writes commit together or not at all.
func (r *FootprintRepository) CreateWithGuestbook(footprint *models.Footprint, guestbook *models.Guestbook) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(footprint).Error; err != nil {
			return err
		}
		return tx.Model(&models.Guestbook{}).Where("id = ?", guestbook.ID).
			Update("has_unread_update", true).Error
	})
}

func (r *FootprintRepository) FindByID(id uint) (*models.Footprint, error) {
	var footprint models.Footprint
	err := r.db.Preload("Guestbook").First(&footprint, id).Error
	return &footprint, err
}

// MarkChecked is a single UPDATE so concurrent acknowledgments can't lose
// each other's write. The flag only ever moves false->true.
func (r *FootprintRepository) MarkChecked(id uint) error {
	return r.db.Model(&models.Footprint{}).Where("id = ?", id).
		Update("is_checked", true).Error
}

func (r *FootprintRepository) SetPhotoKey(id uint, key string) error {
	return r.db.Model(&models.Footprint{}).Where("id = ?", id).
		Update("photo_key", key).Error
}

func (r *FootprintRepository) Delete(footprint *models.Footprint) error {
	return r.db.Unscoped().Delete(footprint).Error
}

// PageByGuestbook returns page `page` (zero-based) of the guestbook's
// footprints, newest first. It fetches one extra row to decide whether a
// next page exists.
func (r *FootprintRepository) PageByGuestbook(guestbookID string, page, size int) ([]models.Footprint, bool, bool, error) {
	var footprints []models.Footprint
	err := r.db.Where("guestbook_id = ?", guestbookID).
		Order("created_at DESC, id DESC").
		Offset(page * size).
		Limit(size + 1).
		Find(&footprints).Error
	if err != nil {
		return nil, false, false, err
	}

	isLast := len(footprints) <= size
	if !isLast {
		footprints = footprints[:size]
	}
	return footprints, page == 0, isLast, nil
}
