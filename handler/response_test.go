package handler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/handler"
)

func datastarRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Datastar-Request", "true")
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("regular request gets HTML", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := handler.Templ(text("<p>hi</p>")).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", w.Body.String())
	})

	t.Run("datastar request gets a patch", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := handler.Templ(text(`<div id="form">x</div>`)).Render(w, datastarRequest(http.MethodGet, "/"))
		require.NoError(t, err)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "datastar-patch-elements")
		assert.Contains(t, w.Body.String(), `<div id="form">x</div>`)
	})

	t.Run("status applies to regular requests", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := handler.TemplStatus(http.StatusNotFound, text("gone")).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("partial for datastar, full otherwise", func(t *testing.T) {
		t.Parallel()

		resp := handler.TemplPartial(text("partial"), text("full"))

		w := httptest.NewRecorder()
		require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "full", w.Body.String())

		w = httptest.NewRecorder()
		require.NoError(t, resp.Render(w, datastarRequest(http.MethodGet, "/")))
		assert.Contains(t, w.Body.String(), "partial")
		assert.NotContains(t, w.Body.String(), "full")
	})

	t.Run("multi sends every patch", func(t *testing.T) {
		t.Parallel()

		resp := handler.TemplMulti(
			handler.Patch(text(`<div id="a">a</div>`)),
			handler.Patch(text(`<div>toast</div>`), handler.WithTarget("#toast-container"), handler.WithPatchMode(handler.PatchPrepend)),
		)

		w := httptest.NewRecorder()
		require.NoError(t, resp.Render(w, datastarRequest(http.MethodPost, "/")))
		body := w.Body.String()
		assert.Equal(t, 2, bytes.Count([]byte(body), []byte("event: datastar-patch-elements")))
		assert.Contains(t, body, "#toast-container")
		assert.Contains(t, body, "prepend")

		w = httptest.NewRecorder()
		require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, `<div id="a">a</div><div>toast</div>`, w.Body.String())
	})
}

func TestStream(t *testing.T) {
	t.Parallel()

	t.Run("sends components and signals", func(t *testing.T) {
		t.Parallel()

		resp := handler.Stream(func(s handler.StreamContext) error {
			if err := s.SendSignals(map[string]any{"viewId": "abc"}); err != nil {
				return err
			}
			return s.SendComponent(handler.Patch(text(`<form id="subscription-form"></form>`)))
		})

		w := httptest.NewRecorder()
		require.NoError(t, resp.Render(w, datastarRequest(http.MethodGet, "/")))
		body := w.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"viewId":"abc"`)
		assert.Contains(t, body, "subscription-form")
	})

	t.Run("rejects regular requests", func(t *testing.T) {
		t.Parallel()

		resp := handler.Stream(func(handler.StreamContext) error { return nil })
		err := resp.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		var httpErr handler.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestJSONAndText(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	err := handler.JSON(map[string]string{"uuid": "1"}, handler.WithJSONStatus(http.StatusCreated)).
		Render(w, httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"uuid":"1"}`, w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, handler.Text(http.StatusBadRequest, "url is required").Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "url is required", w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(w, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	toast := func(p handler.ErrorToastParams) templ.Component {
		return text(`<div class="toast ` + p.Type + `">` + p.Message + `</div>`)
	}
	page := func(p handler.ErrorPageParams) templ.Component {
		return text("<h1>" + p.Error + "</h1>")
	}

	t.Run("datastar request gets a toast", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		eh := handler.NewErrorHandler(slog.New(slog.NewJSONHandler(&logs, nil)), handler.ErrorHandlerConfig{
			ErrorToast: toast,
			ErrorPage:  page,
		})

		w := httptest.NewRecorder()
		req := datastarRequest(http.MethodPost, "/ocl/subscription")
		eh(handler.NewContext(w, req), handler.NewHTTPError(http.StatusNotFound, "view expired"))

		body := w.Body.String()
		assert.Contains(t, body, "#toast-container")
		assert.Contains(t, body, `class="toast warning"`)
		assert.Contains(t, body, "view expired")
		assert.Contains(t, logs.String(), `"status_code":404`)
		assert.Contains(t, logs.String(), `"level":"WARN"`)
	})

	t.Run("regular request gets an error page", func(t *testing.T) {
		t.Parallel()

		eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), handler.ErrorHandlerConfig{
			ErrorToast: toast,
			ErrorPage:  page,
		})

		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred processing your request")
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("falls back to plain text", func(t *testing.T) {
		t.Parallel()

		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ValidationError{"url": {"is required"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "url: is required")
	})
}
