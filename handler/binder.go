package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// maxBodySize limits JSON request bodies.
const maxBodySize = 1 << 20

// Signals binds DataStar signals into the request struct.
// Non-DataStar requests are skipped.
func Signals() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid signals: %v", err))
		}
		return nil
	}
}

// JSONBody decodes an application/json body into the request struct.
// Requests without a JSON content type are skipped.
func JSONBody() Bind {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return ErrBinderNotApplicable
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			return NewHTTPError(http.StatusBadRequest, "failed to read request body")
		}
		if len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, v); err != nil {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		}
		return nil
	}
}
