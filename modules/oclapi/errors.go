package oclapi

import "errors"

var (
	ErrNotFound = errors.New("subscription not found")
	ErrStorage  = errors.New("subscription storage failure")
)
