package cache

import "errors"

var (
	ErrStoreUnavailable = errors.New("cache store unavailable")
	ErrEncodeValue      = errors.New("failed to encode cached value")
	ErrDecodeValue      = errors.New("failed to decode cached value")
)
