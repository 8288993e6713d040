package types

import "errors"

var (
	ErrWalkNotFound = errors.New("walk not found")
	ErrNotFound     = errors.New("requested item not found")

	ErrInvalidLatitude  = errors.New("latitude out of range [-90, 90]")
	ErrInvalidLongitude = errors.New("longitude out of range [-180, 180]")

	ErrPermissionDenied = errors.New("foreground location permission denied")

	ErrEmptyMessage    = errors.New("message text must not be empty")
	ErrInvalidSender   = errors.New("sender must be 'owner' or 'walker'")
	ErrChatUnavailable = errors.New("chat is not available for this walk status")
)
