package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/handler"
	"github.com/dmitrymomot/ocladmin/modules/ocl/views"
)

func identity(key string, _ ...string) string { return key }

func TestForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   views.FormParams
		contains []string
		excludes []string
	}{
		{
			name: "subscribed with options",
			params: views.FormParams{
				Endpoint:             "/ocl/subscription",
				URL:                  `https://example.org/?a=1&b="2"`,
				SubscribedToSnapshot: true,
				ValidationDisabled:   true,
				Subscribed:           true,
			},
			contains: []string{
				`value="https://example.org/?a=1&amp;b=&#34;2&#34;"`,
				`data-bind="snapshot" checked`,
				`data-bind="disableValidation" checked`,
				`data-on-submit="@delete(&#39;/ocl/subscription&#39;)"`,
				`data-on-click="@post(&#39;/ocl/subscription/cancel&#39;)"`,
			},
			excludes: []string{`class="danger" disabled`},
		},
		{
			name:     "empty form",
			params:   views.FormParams{Endpoint: "/ocl/subscription"},
			contains: []string{`class="danger" disabled`, `value=""`, views.URLPlaceholder},
			excludes: []string{" checked"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.params.T = identity
			var buf bytes.Buffer
			require.NoError(t, views.Form(tt.params).Render(context.Background(), &buf))
			out := buf.String()
			assert.Contains(t, out, `id="`+views.ContainerID+`"`)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestNotification(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := views.Notification(views.ToastParams{
		Kind:        "error",
		Title:       "Error saving subscription",
		Description: `{"error":"<bad>"}`,
		Critical:    true,
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "data-critical")
	assert.Contains(t, out, "&lt;bad&gt;")
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := views.ErrorPage(handler.ErrorPageParams{
		Error:      "Not Found",
		StatusCode: 404,
		RequestID:  "req-1",
		RetryURL:   "/ocl/subscription",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<h1>404</h1>")
	assert.Contains(t, out, "req-1")
	assert.Contains(t, out, `href="/ocl/subscription"`)
}
