package service

import (
	"sort"
	"time"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"gorm.io/gorm"
)

// MockGuestbookRepository is an in-memory implementation of
// repository.GuestbookRepositoryInterface for tests.
type MockGuestbookRepository struct {
	guestbooks map[string]*models.Guestbook
}

func NewMockGuestbookRepository() *MockGuestbookRepository {
	return &MockGuestbookRepository{guestbooks: make(map[string]*models.Guestbook)}
}

func (m *MockGuestbookRepository) Create(guestbook *models.Guestbook) error {
	m.guestbooks[guestbook.ID] = guestbook
	return nil
}

func (m *MockGuestbookRepository) FindByID(id string) (*models.Guestbook, error) {
	if gb, ok := m.guestbooks[id]; ok {
		copy := *gb
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGuestbookRepository) Save(guestbook *models.Guestbook) error {
	m.guestbooks[guestbook.ID] = guestbook
	return nil
}

// MockFootprintRepository is an in-memory implementation of
// repository.FootprintRepositoryInterface for tests.
type MockFootprintRepository struct {
	footprints map[uint]*models.Footprint
	guestbooks *MockGuestbookRepository
	nextID     uint
}

func NewMockFootprintRepository(guestbooks *MockGuestbookRepository) *MockFootprintRepository {
	return &MockFootprintRepository{
		footprints: make(map[uint]*models.Footprint),
		guestbooks: guestbooks,
		nextID:     1,
	}
}

func (m *MockFootprintRepository) CreateWithGuestbook(footprint *models.Footprint, guestbook *models.Guestbook) error {
	if footprint.ID == 0 {
		footprint.ID = m.nextID
		m.nextID++
	}
	if footprint.CreatedAt.IsZero() {
		footprint.CreatedAt = time.Now()
	}
	stored := *footprint
	stored.Guestbook = *guestbook
	m.footprints[footprint.ID] = &stored

	if gb, ok := m.guestbooks.guestbooks[guestbook.ID]; ok {
		gb.HasUnreadUpdate = true
	}
	return nil
}

func (m *MockFootprintRepository) FindByID(id uint) (*models.Footprint, error) {
	if fp, ok := m.footprints[id]; ok {
		copy := *fp
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFootprintRepository) MarkChecked(id uint) error {
	if fp, ok := m.footprints[id]; ok {
		fp.IsChecked = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *MockFootprintRepository) SetPhotoKey(id uint, key string) error {
	if fp, ok := m.footprints[id]; ok {
		fp.PhotoKey = key
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *MockFootprintRepository) Delete(footprint *models.Footprint) error {
	delete(m.footprints, footprint.ID)
	return nil
}

func (m *MockFootprintRepository) PageByGuestbook(guestbookID string, page, size int) ([]models.Footprint, bool, bool, error) {
	var all []models.Footprint
	for _, fp := range m.footprints {
		if fp.GuestbookID == guestbookID {
			all = append(all, *fp)
		}
	}
	// Newest first, id as tiebreaker, matching the real repository's ORDER BY.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	start := page * size
	if start >= len(all) {
		return nil, page == 0, true, nil
	}
	end := start + size
	isLast := end >= len(all)
	if !isLast {
		all = all[start:end]
	} else {
		all = all[start:]
	}
	return all, page == 0, isLast, nil
}
