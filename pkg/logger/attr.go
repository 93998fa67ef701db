package logger

import "log/slog"

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request correlation id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the emitting part of the application.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ViewID records the id of a subscription page view.
func ViewID(id string) slog.Attr {
	return slog.String("view_id", id)
}

// StatusCode records an HTTP status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// CacheKey records a cache key.
func CacheKey(key string) slog.Attr {
	return slog.String("cache_key", key)
}
