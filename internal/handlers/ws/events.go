package ws

import "time"

// FootprintCreatedEvent is pushed to a guestbook's host when a visitor
// leaves a new footprint.
type FootprintCreatedEvent struct {
	Type        string    `json:"type"`
	GuestbookID string    `json:"guestbook_id"`
	FootprintID uint      `json:"footprint_id"`
	Writer      string    `json:"writer"`
	IsSecret    bool      `json:"is_secret"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewFootprintCreatedEvent(guestbookID string, footprintID uint, writer string, isSecret bool, createdAt time.Time) FootprintCreatedEvent {
	return FootprintCreatedEvent{
		Type:        "footprint_created",
		GuestbookID: guestbookID,
		FootprintID: footprintID,
		Writer:      writer,
		IsSecret:    isSecret,
		CreatedAt:   createdAt,
	}
}
