package models

import (
	"time"

	"gorm.io/gorm"
)

type Footprint struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Writer  string `gorm:"size:40;not null" json:"writer"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Bcrypt digest, non-empty iff IsSecret. Never copied from a request;
	// the service hashes the plaintext after mapping.
	Password string `gorm:"size:100" json:"-"`
	IsSecret bool   `gorm:"default:false" json:"is_secret"`

	// Host acknowledgment. Transitions false->true only.
	IsChecked bool `gorm:"default:false;index" json:"is_checked"`

	// Set once at creation, never reassigned.
	GuestbookID string    `gorm:"size:36;not null;index" json:"guestbook_id"`
	Guestbook   Guestbook `gorm:"foreignKey:GuestbookID" json:"-"`

	// Object key of the attached photo, empty when none.
	PhotoKey string `gorm:"size:200" json:"-"`
}

type FootprintResponse struct {
	ID        uint      `json:"id"`
	Writer    string    `json:"writer"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsChecked bool      `json:"is_checked"`
	IsSecret  bool      `json:"is_secret"`
	HasPhoto  bool      `json:"has_photo"`
}

func (f *Footprint) ToResponse() FootprintResponse {
	return FootprintResponse{
		ID:        f.ID,
		Writer:    f.Writer,
		Content:   f.Content,
		CreatedAt: f.CreatedAt,
		IsChecked: f.IsChecked,
		IsSecret:  f.IsSecret,
		HasPhoto:  f.PhotoKey != "",
	}
}

// CreateDate is the UTC calendar date used for listing buckets.
func (r FootprintResponse) CreateDate() string {
	return r.CreatedAt.UTC().Format("2006-01-02")
}

// FootprintDateGroup is one calendar-date bucket of a listing page.
type FootprintDateGroup struct {
	Date       string              `json:"date"`
	Footprints []FootprintResponse `json:"footprints"`
}

// FootprintByDateSlice is one page of footprints regrouped by date. Page
// metadata is carried through from the repository slice unchanged.
type FootprintByDateSlice struct {
	Groups  []FootprintDateGroup `json:"groups"`
	Page    int                  `json:"page"`
	Size    int                  `json:"size"`
	IsFirst bool                 `json:"is_first"`
	IsLast  bool                 `json:"is_last"`
}
