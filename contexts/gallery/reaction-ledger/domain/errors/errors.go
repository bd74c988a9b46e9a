package errors

import "errors"

var (
	ErrInvalidItemInput     = errors.New("invalid item input")
	ErrInvalidReactionEvent = errors.New("invalid reaction event")
	ErrItemNotFound         = errors.New("item not found")
	ErrExternalRefConflict  = errors.New("external ref already registered to another item")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrGenerationFailed     = errors.New("media generation failed")
	ErrPostFailed           = errors.New("item message post failed")
	ErrPublishNotConfigured = errors.New("item publication not configured")
)
