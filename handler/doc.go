// Package handler provides typed HTTP handlers with templ and DataStar responses.
//
// A HandlerFunc receives a Context and a request value filled by binders and
// returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	type FormSignals struct {
//		ViewID string `json:"viewId"`
//		URL    string `json:"url"`
//	}
//
//	func submit(ctx handler.Context, req FormSignals) handler.Response {
//		return handler.TemplMulti(
//			handler.Patch(views.Form(state)),
//			handler.Patch(views.Toast(msg), handler.WithTarget("#toast-container"),
//				handler.WithPatchMode(handler.PatchPrepend)),
//		)
//	}
//
//	r.Post("/subscription", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, FormSignals](handler.Signals()),
//	))
//
// # Responses
//
// Templ, TemplPartial and TemplMulti render HTML for regular requests and
// element patches for DataStar requests. Stream gives a handler direct
// control over a DataStar SSE connection for mixed element and signal patches.
// JSON, Text and Empty serve plain API endpoints.
//
// # Errors
//
// Return HTTPError or ValidationError from binders and responses to control the
// status code. NewErrorHandler logs every error and renders a toast into
// #toast-container for DataStar requests or an error page otherwise.
package handler
