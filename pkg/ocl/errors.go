package ocl

import "errors"

var (
	ErrMissingBaseURL = errors.New("ocl client: base URL is required")
	ErrMissingUUID    = errors.New("ocl client: subscription has no uuid")
	ErrRequestFailed  = errors.New("ocl client: request failed")
	ErrDecodeResponse = errors.New("ocl client: failed to decode response")
)
