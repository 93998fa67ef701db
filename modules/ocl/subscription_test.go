package ocl_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/modules/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/i18n"
	pkgocl "github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/svc/subscription"
)

// fakeBackend keeps a single subscription in memory.
type fakeBackend struct {
	mu         sync.Mutex
	current    *pkgocl.Subscription
	saveStatus int
	saveBody   string
	saved      []pkgocl.Subscription
}

func (f *fakeBackend) Get(context.Context) (*pkgocl.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return nil, nil
	}
	sub := f.current.Clone()
	return &sub, nil
}

func (f *fakeBackend) Save(_ context.Context, sub pkgocl.Subscription) (pkgocl.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, sub)
	if f.saveStatus >= http.StatusBadRequest {
		return pkgocl.Response{StatusCode: f.saveStatus, Body: f.saveBody}, nil
	}
	status := http.StatusOK
	if sub.UUID == "" {
		sub.UUID = "11111111-2222-4333-8444-555555555555"
		status = http.StatusCreated
	}
	f.current = &sub
	body, _ := json.Marshal(sub)
	return pkgocl.Response{StatusCode: status, Body: string(body)}, nil
}

func (f *fakeBackend) Delete(context.Context, pkgocl.Subscription) (pkgocl.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	return pkgocl.Response{StatusCode: http.StatusNoContent}, nil
}

type fixture struct {
	backend *fakeBackend
	svc     *subscription.Service
	server  *httptest.Server
}

func newFixture(t *testing.T, current *pkgocl.Subscription) *fixture {
	t.Helper()

	tr, err := ocl.NewTranslator(context.Background())
	require.NoError(t, err)

	backend := &fakeBackend{current: current}
	svc := subscription.NewService(backend)
	t.Cleanup(svc.Close)

	r := chi.NewRouter()
	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(tr.SupportedLanguages()...))))
	r.Mount(ocl.DefaultBasePath, ocl.Router(ocl.RouterOptions{
		Subscription: ocl.NewSubscriptionHandler(svc, tr, ocl.DefaultBasePath),
	}))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{backend: backend, svc: svc, server: server}
}

func (f *fixture) do(t *testing.T, method, path string, signals map[string]any) (int, string) {
	t.Helper()

	payload, err := json.Marshal(signals)
	require.NoError(t, err)

	target := f.server.URL + ocl.DefaultBasePath + path
	var body io.Reader
	if method == http.MethodGet {
		target += "?datastar=" + url.QueryEscape(string(payload))
	} else {
		body = strings.NewReader(string(payload))
	}

	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Datastar-Request", "true")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestSubscriptionHandler_Page(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	resp, err := http.Get(f.server.URL + "/ocl/subscription")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(raw)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "OCL Subscription Module")
	assert.Contains(t, body, `data-on-load="@get(&#39;/ocl/subscription/form&#39;)"`)
	assert.Contains(t, body, `aria-busy="true"`)
	assert.NotContains(t, body, `id="subscription-form"`)
}

func TestSubscriptionHandler_Localized(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/ocl/subscription", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "Configurar suscripción")
}

func TestSubscriptionHandler_Form(t *testing.T) {
	t.Parallel()

	t.Run("existing subscription fills the form", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &pkgocl.Subscription{
			UUID:                 "abc",
			URL:                  "https://api.openconceptlab.org/orgs/CIEL/sources/CIEL",
			Token:                "tok",
			SubscribedToSnapshot: true,
			ValidationType:       pkgocl.ValidationNone,
		})
		view := f.svc.Open()

		status, body := f.do(t, http.MethodGet, "/subscription/form", map[string]any{"viewId": view.ID()})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "https://api.openconceptlab.org/orgs/CIEL/sources/CIEL")
		assert.Contains(t, body, `"disableValidation":true`)
		assert.Contains(t, body, `"token":"tok"`)
		assert.NotContains(t, body, `value="tok"`)
		assert.NotContains(t, body, `class="danger" disabled`)

		state := view.State()
		assert.False(t, state.Loading)
		assert.True(t, state.Subscribed)
	})

	t.Run("no subscription disables unsubscribe", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		view := f.svc.Open()

		status, body := f.do(t, http.MethodGet, "/subscription/form", map[string]any{"viewId": view.ID()})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `class="danger" disabled`)
		assert.Contains(t, body, `"url":""`)
	})

	t.Run("reload keeps local edits", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &pkgocl.Subscription{UUID: "abc", URL: "https://stored"})
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))
		view.SetURL("https://edited")
		f.backend.current.URL = "https://changed-elsewhere"

		_, body := f.do(t, http.MethodGet, "/subscription/form", map[string]any{"viewId": view.ID()})
		assert.Contains(t, body, `"url":"https://edited"`)
		assert.Equal(t, "https://edited", view.State().Form.URL)
	})

	t.Run("unknown view is gone", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)

		_, body := f.do(t, http.MethodGet, "/subscription/form", map[string]any{"viewId": "missing"})
		assert.Contains(t, body, "This page has expired")
	})
}

func TestSubscriptionHandler_Submit(t *testing.T) {
	t.Parallel()

	t.Run("creates a subscription", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))

		status, body := f.do(t, http.MethodPost, "/subscription", map[string]any{
			"viewId":            view.ID(),
			"url":               "https://api.openconceptlab.org/orgs/openmrs/collections/dict",
			"token":             "secret",
			"snapshot":          false,
			"disableValidation": true,
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Subscription created successfully")
		assert.Contains(t, body, "selector #toast-container")

		require.Len(t, f.backend.saved, 1)
		assert.Equal(t, pkgocl.ValidationNone, f.backend.saved[0].ValidationType)
		assert.Equal(t, "secret", f.backend.saved[0].Token)
		assert.True(t, view.State().Subscribed)
	})

	t.Run("updates an existing subscription", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &pkgocl.Subscription{UUID: "abc", URL: "https://a", ValidationType: pkgocl.ValidationFull})
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))

		_, body := f.do(t, http.MethodPost, "/subscription", map[string]any{
			"viewId": view.ID(),
			"url":    "https://b",
		})
		assert.Contains(t, body, "Subscription updated successfully")
		require.Len(t, f.backend.saved, 1)
		assert.Equal(t, "abc", f.backend.saved[0].UUID)
		assert.Equal(t, "https://b", f.backend.saved[0].URL)
	})

	t.Run("server error shows response body", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.backend.saveStatus = http.StatusBadRequest
		f.backend.saveBody = "url is invalid"
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))

		_, body := f.do(t, http.MethodPost, "/subscription", map[string]any{
			"viewId": view.ID(),
			"url":    "not a url",
		})
		assert.Contains(t, body, "Error saving subscription")
		assert.Contains(t, body, "url is invalid")
		assert.Contains(t, body, "not a url")
		assert.Equal(t, "not a url", view.State().Form.URL)
	})

	t.Run("rejected while loading", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		view := f.svc.Open()

		_, body := f.do(t, http.MethodPost, "/subscription", map[string]any{
			"viewId": view.ID(),
			"url":    "https://x",
			"token":  "t",
		})
		assert.Contains(t, body, "still loading")
		assert.Empty(t, f.backend.saved)
		assert.Equal(t, subscription.DefaultForm(), view.State().Form)
	})
}

func TestSubscriptionHandler_Cancel(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &pkgocl.Subscription{UUID: "abc", URL: "https://kept"})
	view := f.svc.Open()
	require.NoError(t, view.Load(context.Background()))
	view.SetURL("https://edited")

	_, body := f.do(t, http.MethodPost, "/subscription/cancel", map[string]any{"viewId": view.ID()})
	assert.Contains(t, body, `"url":"https://kept"`)
	assert.Equal(t, "https://kept", view.State().Form.URL)
}

func TestSubscriptionHandler_Unsubscribe(t *testing.T) {
	t.Parallel()

	t.Run("removes the subscription", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, &pkgocl.Subscription{UUID: "abc", URL: "https://a", Token: "t"})
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))

		_, body := f.do(t, http.MethodDelete, "/subscription", map[string]any{"viewId": view.ID()})
		assert.Contains(t, body, "Successfully unsubscribed.")
		assert.Contains(t, body, `"url":""`)
		assert.False(t, view.State().Subscribed)
		assert.Nil(t, f.backend.current)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		view := f.svc.Open()
		require.NoError(t, view.Load(context.Background()))

		_, body := f.do(t, http.MethodDelete, "/subscription", map[string]any{"viewId": view.ID()})
		assert.Contains(t, body, "There is no subscription to remove.")
	})
}
