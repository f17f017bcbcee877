package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Blob stores, session stores and
// the token codec return these (optionally wrapped) so handlers can translate
// them into domain errors or status codes.
//
// - ErrNotFound: object, session or user does not exist
// - ErrExpired: session or token has expired
// - ErrInvalid: token or cookie failed verification
// - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrInvalid     = errors.New("invalid")
	ErrUnavailable = errors.New("unavailable")
)
