package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guestbook struct {
	ID        string         `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	HostID string `gorm:"size:40;not null;index" json:"host_id"`
	Host   Member `gorm:"foreignKey:HostID" json:"-"`

	// Registered anchor coordinate, degrees. Footprints may only be left
	// within range of this point.
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	// Flipped whenever a new footprint lands, cleared by the host's client.
	HasUnreadUpdate bool `gorm:"default:false" json:"has_unread_update"`

	Footprints []Footprint `gorm:"foreignKey:GuestbookID" json:"-"`
}

func (g *Guestbook) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
