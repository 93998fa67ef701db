package handler

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext sends patches through an open DataStar SSE connection.
type StreamContext interface {
	Context

	// SendComponent patches a single templ component.
	SendComponent(p TemplPatch) error

	// SendSignals merges values into the client signals.
	//
	//	err := stream.SendSignals(map[string]any{"viewId": id, "token": ""})
	SendSignals(signals map[string]any) error
}

// StreamFunc writes a sequence of patches. The response ends when it returns.
type StreamFunc func(stream StreamContext) error

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(p TemplPatch) error {
	return c.sse.PatchElementTempl(p.Component, p.Options...)
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

type streamResponse struct {
	fn StreamFunc
}

// Render opens the SSE connection and runs the stream function.
func (s streamResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, ErrNotDataStar.Error())
	}
	return s.fn(&streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
	})
}

// Stream returns a DataStar-only response driven by fn. Regular requests
// get a 400 error.
//
//	return handler.Stream(func(s handler.StreamContext) error {
//		if err := s.SendSignals(map[string]any{"token": ""}); err != nil {
//			return err
//		}
//		return s.SendComponent(handler.Patch(views.Form(state)))
//	})
func Stream(fn StreamFunc) Response {
	return streamResponse{fn: fn}
}
