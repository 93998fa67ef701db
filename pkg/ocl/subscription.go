package ocl

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"maps"
)

// ValidationType controls whether imported content is checked against collection rules.
type ValidationType string

const (
	ValidationFull ValidationType = "FULL"
	ValidationNone ValidationType = "NONE"
)

// Subscription is the singleton record describing where and how to pull content.
// Extra holds attributes the server sent that this package does not model; they are
// written back untouched.
type Subscription struct {
	UUID                 string         `json:"uuid,omitempty"`
	URL                  string         `json:"url"`
	Token                string         `json:"token"`
	SubscribedToSnapshot bool           `json:"subscribedToSnapshot"`
	ValidationType       ValidationType `json:"validationType"`
	Extra                map[string]any `json:"-"`
}

// Default returns the empty subscription a form starts from.
func Default() Subscription {
	return Subscription{ValidationType: ValidationFull}
}

// Clone returns a copy that shares no mutable state with s.
func (s Subscription) Clone() Subscription {
	s.Extra = maps.Clone(s.Extra)
	return s
}

var knownFields = []string{"uuid", "url", "token", "subscribedToSnapshot", "validationType"}

// MarshalJSON writes the modelled fields on top of any preserved server attributes.
func (s Subscription) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+len(knownFields))
	maps.Copy(out, s.Extra)
	if s.UUID != "" {
		out["uuid"] = s.UUID
	}
	out["url"] = s.URL
	out["token"] = s.Token
	out["subscribedToSnapshot"] = s.SubscribedToSnapshot
	out["validationType"] = s.ValidationType
	return json.Marshal(out)
}

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra.
func (s *Subscription) UnmarshalJSON(data []byte) error {
	type plain Subscription
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	raw, err := DecodeAttributes(data)
	if err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.Extra = raw
	} else {
		p.Extra = nil
	}

	*s = Subscription(p)
	return nil
}

// DecodeAttributes decodes a JSON object keeping numbers as json.Number,
// so values beyond float64 precision are written back exactly.
func DecodeAttributes(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// LogValue implements slog.LogValuer. The token is never written to logs.
func (s Subscription) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("uuid", s.UUID),
		slog.String("url", s.URL),
		slog.Bool("token_set", s.Token != ""),
		slog.Bool("subscribed_to_snapshot", s.SubscribedToSnapshot),
		slog.String("validation_type", string(s.ValidationType)),
	)
}
