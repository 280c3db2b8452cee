package domain

import "errors"

// ErrContentNotFound is returned when a content ID cannot be found in the store.
var ErrContentNotFound = errors.New("content not found")

// ErrInvalidID is returned when a content ID cannot be used as a storage key.
var ErrInvalidID = errors.New("invalid content id")

// ErrInvalidDocument is returned when a document body is not decodable at all.
// Shape problems inside a decodable document are reported as Issues instead.
var ErrInvalidDocument = errors.New("invalid document")
