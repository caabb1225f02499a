package domain

import "errors"

// Trade bot error types
var (
	// ErrValidation indicates bad user input (price, selection index)
	ErrValidation = errors.New("validation error")

	// ErrUpstreamFetch indicates a row store read failed
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrUpstreamWrite indicates a row store append failed
	ErrUpstreamWrite = errors.New("upstream write failed")

	// ErrEmptyLog indicates a finish was requested with no skins added
	ErrEmptyLog = errors.New("no skins added")

	// ErrUnknownAction indicates postback data that does not decode to an action
	ErrUnknownAction = errors.New("unknown action")
)
