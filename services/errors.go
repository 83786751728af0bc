package services

import (
	"errors"
)

// Request-level failure taxonomy. Controllers map these onto HTTP statuses;
// everything else bubbles up as an internal error.
var (
	// ErrInvalidInput covers malformed playlist references and missing
	// required fields. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOwnerMismatch means the claimed owner differs from the
	// authenticated identity. Fatal for the request.
	ErrOwnerMismatch = errors.New("owner does not match authenticated user")

	// ErrPlaylistEmpty means the video listing returned zero items: a
	// distinct not-found condition, not an empty success and not bad input.
	ErrPlaylistEmpty = errors.New("playlist has no videos")
)
