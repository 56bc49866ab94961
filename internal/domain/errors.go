package domain

import "errors"

var (
	ErrInvalidSize         = errors.New("deck size must be at least 1")
	ErrInsufficientCatalog = errors.New("catalog cannot supply enough distinct cards")
	ErrEmptyDeck           = errors.New("draw pile is exhausted")
	ErrInvalidSelection    = errors.New("selection does not match a pending card")
	ErrUnknownCardType     = errors.New("unknown card type")
	ErrDeckNotFound        = errors.New("deck not found")
	ErrDeckConflict        = errors.New("deck was modified concurrently")
	ErrCatalogUnavailable  = errors.New("card catalog unavailable")
)
