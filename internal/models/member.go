package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is the account a guestbook host signs in with. Registration and
// profile management are handled by the account service; this entity exists
// for the host foreign key and as the JWT subject.
type Member struct {
	ID        string         `gorm:"primarykey;size:40" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nickname     string `gorm:"size:40;not null" json:"nickname"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Guestbooks []Guestbook `gorm:"foreignKey:HostID" json:"-"`
}
