package service

import "errors"

// Domain errors surfaced to the transport layer. Handlers map these to
// response codes with errors.Is; anything else is a storage failure and
// propagates as-is.
var (
	ErrGuestbookNotFound = errors.New("guestbook not found")
	ErrFootprintNotFound = errors.New("footprint not found")
	ErrPhotoNotFound     = errors.New("footprint has no photo")
	ErrOutOfArea         = errors.New("footprint location is out of range")
	ErrForbidden         = errors.New("not allowed to access this footprint")
)
