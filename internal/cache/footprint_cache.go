package cache

import (
	"fmt"
	"time"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// ListingTTL bounds how stale a cached listing page may get; writes also
// invalidate eagerly.
const ListingTTL = 2 * time.Minute

// FootprintCache caches date-grouped listing pages per guestbook.
type FootprintCache struct {
	redis *RedisCache
}

func NewFootprintCache(redis *RedisCache) *FootprintCache {
	return &FootprintCache{redis: redis}
}

func listingKey(guestbookID string, page, size int) string {
	return fmt.Sprintf("fplist:%s:%d:%d", guestbookID, page, size)
}

// GetListing retrieves a cached listing page.
func (fc *FootprintCache) GetListing(guestbookID string, page, size int) (*models.FootprintByDateSlice, bool) {
	if fc == nil || fc.redis == nil {
		return nil, false
	}
	data, err := fc.redis.Get(listingKey(guestbookID, page, size))
	if err != nil || data == nil {
		return nil, false
	}

	var slice models.FootprintByDateSlice
	if err := msgpack.Unmarshal(data, &slice); err != nil {
		return nil, false
	}
	return &slice, true
}

// SetListing caches a listing page.
func (fc *FootprintCache) SetListing(guestbookID string, page, size int, slice *models.FootprintByDateSlice) error {
	if fc == nil || fc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(slice)
	if err != nil {
		return err
	}
	return fc.redis.Set(listingKey(guestbookID, page, size), data, ListingTTL)
}

// InvalidateGuestbook drops every cached page of a guestbook. Called after
// a footprint is created or deleted.
func (fc *FootprintCache) InvalidateGuestbook(guestbookID string) error {
	if fc == nil || fc.redis == nil {
		return nil
	}
	return fc.redis.DeletePattern(fmt.Sprintf("fplist:%s:*", guestbookID))
}
