package views

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ocladmin/handler"
)

// Element ids patched by the subscription handlers.
const (
	ContainerID      = "ocl-subscription"
	ToastContainerID = "toast-container"
)

// URLPlaceholder is the example collection URL shown in the empty URL field.
const URLPlaceholder = "https://api.openconceptlab.org/orgs/openmrs/collections/dictionary-name"

// Translate resolves a translation key in the request language.
type Translate func(key string, args ...string) string

// PageParams contains data for rendering the full subscription page.
type PageParams struct {
	Lang     string
	Endpoint string
	ViewID   string
	T        Translate
}

// FormParams contains data for rendering the subscription form.
type FormParams struct {
	Endpoint             string
	URL                  string
	SubscribedToSnapshot bool
	ValidationDisabled   bool
	Subscribed           bool
	T                    Translate
}

// ToastParams contains data for rendering a toast or a notification.
type ToastParams struct {
	Kind        string // "success" or "error"
	Title       string
	Description string
	Critical    bool
}

// Signals returns the initial client signals of a page.
func Signals(viewID string) map[string]any {
	return map[string]any{
		"viewId":            viewID,
		"url":               "",
		"token":             "",
		"snapshot":          false,
		"disableValidation": false,
	}
}

// Page renders the admin page shell with the skeleton and loads the form on init.
func Page(p PageParams) templ.Component {
	return component(func(ctx context.Context, h *html) {
		signals, err := json.Marshal(Signals(p.ViewID))
		if err != nil {
			h.err = err
			return
		}

		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", p.Lang)
		h.raw(`><head><meta charset="utf-8"><title>`)
		h.text(p.T("moduleHeader"))
		h.raw(`</title><script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script></head><body`)
		h.attr("data-signals", string(signals))
		h.raw(`><main class="ocl-admin"><h3 class="module-header">`)
		h.text(p.T("moduleHeader"))
		h.raw(`</h3><nav class="tabs" role="tablist">`)
		tab(h, p.T("tabSubscription"), true)
		tab(h, p.T("tabImport"), false)
		tab(h, p.T("tabPreviousImports"), false)
		h.raw(`</nav><section class="tab-content"`)
		h.attr("data-on-load", "@get("+jsString(p.Endpoint+"/form")+")")
		h.raw(`>`)
		h.render(ctx, Skeleton(FormParams{Endpoint: p.Endpoint, T: p.T}))
		h.raw(`</section></main><div`)
		h.attr("id", ToastContainerID)
		h.raw(` class="toasts" aria-live="polite"></div></body></html>`)
	})
}

func tab(h *html, label string, selected bool) {
	h.raw(`<button type="button" role="tab"`)
	h.attr("aria-selected", strconv.FormatBool(selected))
	h.flag("disabled", !selected)
	h.raw(`>`)
	h.text(label)
	h.raw(`</button>`)
}

// Skeleton is shown while the subscription loads. It has no controls.
func Skeleton(p FormParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div`)
		h.attr("id", ContainerID)
		h.raw(` class="skeleton" aria-busy="true"><fieldset><legend>`)
		h.text(p.T("setupSubscription"))
		h.raw(`</legend><div class="input-skeleton"></div><div class="input-skeleton"></div>`)
		h.raw(`<div class="button-skeleton"></div><div class="button-skeleton"></div></fieldset>`)
		h.raw(`<div class="button-skeleton"></div><span class="visually-hidden">`)
		h.text(p.T("loading"))
		h.raw(`</span></div>`)
	})
}

// Form renders the subscription form and the unsubscribe section.
// Inputs are bound to signals; the unsubscribe button is disabled without a subscription.
func Form(p FormParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div`)
		h.attr("id", ContainerID)
		h.raw(`><form id="subscription-form"`)
		h.attr("data-on-submit", "@post("+jsString(p.Endpoint)+")")
		h.raw(`><h3>`)
		h.text(p.T("setupSubscription"))
		h.raw(`</h3>`)

		h.raw(`<label for="subscriptionUrl">`)
		h.text(p.T("subscriptionUrl"))
		h.raw(`</label><input id="subscriptionUrl" name="url" type="url" data-bind="url"`)
		h.attr("placeholder", URLPlaceholder)
		h.attr("value", p.URL)
		h.raw(`>`)

		h.raw(`<label for="apiToken">`)
		h.text(p.T("apiToken"))
		h.raw(`</label><input id="apiToken" name="token" type="password" autocomplete="off" data-bind="token" placeholder="*************************************************">`)

		h.raw(`<fieldset><legend>`)
		h.text(p.T("advancedOptions"))
		h.raw(`</legend><label><input id="checkbox-0" type="checkbox" data-bind="snapshot"`)
		h.flag("checked", p.SubscribedToSnapshot)
		h.raw(`> `)
		h.text(p.T("subscribeToSnapshot"))
		h.raw(`</label><label><input id="checkbox-1" type="checkbox" data-bind="disableValidation"`)
		h.flag("checked", p.ValidationDisabled)
		h.raw(`> `)
		h.text(p.T("disableValidation"))
		h.raw(`</label></fieldset>`)

		h.raw(`<button type="button" class="secondary"`)
		h.attr("data-on-click", "@post("+jsString(p.Endpoint+"/cancel")+")")
		h.raw(`>`)
		h.text(p.T("cancelButton"))
		h.raw(`</button><button type="submit" class="primary">`)
		h.text(p.T("subscribeButton"))
		h.raw(`</button></form>`)

		h.raw(`<form id="unsubscribe-form"`)
		h.attr("data-on-submit", "@delete("+jsString(p.Endpoint)+")")
		h.raw(`><h3>`)
		h.text(p.T("unsubscribeLegend"))
		h.raw(`</h3><p>`)
		h.text(p.T("unsubscribeInfo"))
		h.raw(`</p><button type="submit" class="danger"`)
		h.flag("disabled", !p.Subscribed)
		h.raw(`>`)
		h.text(p.T("unsubscribeButton"))
		h.raw(`</button></form></div>`)
	})
}

// Toast renders transient success feedback.
func Toast(p ToastParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div role="status"`)
		h.attr("class", "toast toast-"+p.Kind)
		h.raw(`>`)
		if p.Title != "" {
			h.raw(`<strong>`)
			h.text(p.Title)
			h.raw(`</strong>`)
		}
		if p.Description != "" {
			h.raw(`<p>`)
			h.text(p.Description)
			h.raw(`</p>`)
		}
		h.raw(`<button type="button" class="close" data-on-click="el.parentElement.remove()">&times;</button></div>`)
	})
}

// Notification renders blocking error feedback that stays until dismissed.
func Notification(p ToastParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div role="alert"`)
		h.attr("class", "notification notification-"+p.Kind)
		h.flag("data-critical", p.Critical)
		h.raw(`><strong>`)
		h.text(p.Title)
		h.raw(`</strong><pre>`)
		h.text(p.Description)
		h.raw(`</pre><button type="button" class="close" data-on-click="el.parentElement.remove()">&times;</button></div>`)
	})
}

// ErrorToast adapts Notification to handler.NewErrorHandler.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return Notification(ToastParams{Kind: "error", Title: p.Message, Description: p.RequestID})
}

// ErrorPage renders a minimal error document for handler.NewErrorHandler.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		h.text(strconv.Itoa(p.StatusCode))
		h.raw(`</title></head><body><h1>`)
		h.text(strconv.Itoa(p.StatusCode))
		h.raw(`</h1><p>`)
		h.text(p.Error)
		h.raw(`</p>`)
		if p.RequestID != "" {
			h.raw(`<p><small>request id: `)
			h.text(p.RequestID)
			h.raw(`</small></p>`)
		}
		h.raw(`<a`)
		h.attr("href", p.RetryURL)
		h.raw(`>retry</a></body></html>`)
	})
}
