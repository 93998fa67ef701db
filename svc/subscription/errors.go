package subscription

import "errors"

var (
	ErrLoading       = errors.New("subscription is still loading")
	ErrInFlight      = errors.New("request already in flight")
	ErrNotSubscribed = errors.New("no subscription to remove")
	ErrClosed        = errors.New("view is closed")
	ErrViewNotFound  = errors.New("view not found")
)
