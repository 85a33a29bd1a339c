package service

import "errors"

var (
	ErrURLNotFound            = errors.New("URL not found")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrKeyGenerationExhausted = errors.New("key generation attempts exhausted")
	ErrInvalidConfig          = errors.New("invalid configuration")
)
