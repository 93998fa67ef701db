package ocl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ocladmin/handler"
	"github.com/dmitrymomot/ocladmin/modules/ocl/views"
	"github.com/dmitrymomot/ocladmin/pkg/i18n"
	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/svc/subscription"
)

// SubscriptionViews are the components rendered by SubscriptionHandler.
type SubscriptionViews struct {
	Page         func(views.PageParams) templ.Component
	Form         func(views.FormParams) templ.Component
	Toast        func(views.ToastParams) templ.Component
	Notification func(views.ToastParams) templ.Component
}

// DefaultSubscriptionViews returns the built-in components.
func DefaultSubscriptionViews() *SubscriptionViews {
	return &SubscriptionViews{
		Page:         views.Page,
		Form:         views.Form,
		Toast:        views.Toast,
		Notification: views.Notification,
	}
}

// FormSignals are the DataStar signals posted by the subscription page.
type FormSignals struct {
	ViewID            string `json:"viewId"`
	URL               string `json:"url"`
	Token             string `json:"token"`
	Snapshot          bool   `json:"snapshot"`
	DisableValidation bool   `json:"disableValidation"`
}

// SubscriptionHandler serves the subscription settings page.
type SubscriptionHandler struct {
	svc          *subscription.Service
	tr           *i18n.Translator
	endpoint     string
	views        *SubscriptionViews
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
}

// SubscriptionOption configures a SubscriptionHandler.
type SubscriptionOption func(*SubscriptionHandler)

// WithViews replaces the built-in components.
func WithViews(v *SubscriptionViews) SubscriptionOption {
	return func(h *SubscriptionHandler) {
		if v != nil {
			h.views = v
		}
	}
}

// WithErrorHandler sets the handler for guard, binding and render errors.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) SubscriptionOption {
	return func(h *SubscriptionHandler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) SubscriptionOption {
	return func(h *SubscriptionHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewSubscriptionHandler creates the page handler. basePath is where Router is
// mounted and is used to build the DataStar action URLs.
func NewSubscriptionHandler(svc *subscription.Service, tr *i18n.Translator, basePath string, opts ...SubscriptionOption) *SubscriptionHandler {
	h := &SubscriptionHandler{
		svc:      svc,
		tr:       tr,
		endpoint: basePath + "/subscription",
		views:    DefaultSubscriptionViews(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("ocl_subscription"))
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.logger, handler.ErrorHandlerConfig{
			ErrorPage:   views.ErrorPage,
			ErrorToast:  views.ErrorToast,
			ToastTarget: "#" + views.ToastContainerID,
		})
	}
	return h
}

// Handle implements Mountable.
func (h *SubscriptionHandler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.page,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Get("/form", h.wrap(h.form))
	r.Post("/", h.wrap(h.submit))
	r.Post("/cancel", h.wrap(h.cancel))
	r.Delete("/", h.wrap(h.unsubscribe))

	return r
}

func (h *SubscriptionHandler) wrap(fn handler.HandlerFunc[handler.Context, FormSignals]) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, FormSignals](handler.Signals()),
		handler.WithErrorHandler[handler.Context, FormSignals](h.errorHandler),
	)
}

// page opens a new view and renders the shell; the form is loaded by DataStar.
func (h *SubscriptionHandler) page(ctx handler.Context, _ struct{}) handler.Response {
	view := h.svc.Open()
	return handler.Templ(h.views.Page(views.PageParams{
		Lang:     i18n.GetLocale(ctx),
		Endpoint: h.endpoint,
		ViewID:   view.ID(),
		T:        h.translate(ctx),
	}))
}

func (h *SubscriptionHandler) form(ctx handler.Context, req FormSignals) handler.Response {
	view, err := h.view(req.ViewID)
	if err != nil {
		return failure(err)
	}
	// Load failures leave the default form; the view logs them.
	_ = view.Load(ctx)
	return h.render(ctx, view.State(), subscription.Feedback{})
}

func (h *SubscriptionHandler) submit(ctx handler.Context, req FormSignals) handler.Response {
	view, err := h.view(req.ViewID)
	if err != nil {
		return failure(err)
	}
	if view.State().Loading {
		return failure(subscription.ErrLoading)
	}

	view.SetURL(req.URL)
	view.SetToken(req.Token)
	view.SetSubscribedToSnapshot(req.Snapshot)
	view.SetValidationDisabled(req.DisableValidation)

	fb, err := view.Submit(ctx)
	if err != nil {
		return failure(err)
	}
	return h.render(ctx, view.State(), fb)
}

func (h *SubscriptionHandler) cancel(ctx handler.Context, req FormSignals) handler.Response {
	view, err := h.view(req.ViewID)
	if err != nil {
		return failure(err)
	}
	view.Reset()
	return h.render(ctx, view.State(), subscription.Feedback{})
}

func (h *SubscriptionHandler) unsubscribe(ctx handler.Context, req FormSignals) handler.Response {
	view, err := h.view(req.ViewID)
	if err != nil {
		return failure(err)
	}
	fb, err := view.Unsubscribe(ctx)
	if err != nil {
		return failure(err)
	}
	return h.render(ctx, view.State(), fb)
}

func (h *SubscriptionHandler) view(id string) (*subscription.View, error) {
	if id == "" {
		return nil, subscription.ErrViewNotFound
	}
	return h.svc.View(id)
}

// render syncs the client signals with the view, patches the form and shows
// feedback when there is any.
func (h *SubscriptionHandler) render(ctx context.Context, state subscription.State, fb subscription.Feedback) handler.Response {
	t := h.translate(ctx)
	return handler.Stream(func(s handler.StreamContext) error {
		if err := s.SendSignals(map[string]any{
			"url":               state.Form.URL,
			"token":             state.Form.Token,
			"snapshot":          state.Form.SubscribedToSnapshot,
			"disableValidation": state.Form.ValidationDisabled(),
		}); err != nil {
			return err
		}

		if err := s.SendComponent(handler.Patch(h.views.Form(views.FormParams{
			Endpoint:             h.endpoint,
			URL:                  state.Form.URL,
			SubscribedToSnapshot: state.Form.SubscribedToSnapshot,
			ValidationDisabled:   state.Form.ValidationDisabled(),
			Subscribed:           state.Subscribed,
			T:                    t,
		}))); err != nil {
			return err
		}

		var c templ.Component
		switch fb.Kind {
		case subscription.KindSuccess:
			c = h.views.Toast(views.ToastParams{
				Kind:        "success",
				Description: t(fb.TitleKey),
			})
		case subscription.KindError:
			c = h.views.Notification(views.ToastParams{
				Kind:        "error",
				Title:       t(fb.TitleKey),
				Description: fb.Detail,
				Critical:    fb.Critical,
			})
		default:
			return nil
		}
		return s.SendComponent(handler.Patch(c,
			handler.WithTarget("#"+views.ToastContainerID),
			handler.WithPatchMode(handler.PatchPrepend),
		))
	})
}

func (h *SubscriptionHandler) translate(ctx context.Context) views.Translate {
	lang := i18n.GetLocale(ctx)
	return func(key string, args ...string) string {
		return h.tr.T(lang, key, args...)
	}
}

// failure maps view guard errors to HTTP errors for the error handler.
func failure(err error) handler.Response {
	return handler.Error(toHTTPError(err))
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrViewNotFound), errors.Is(err, subscription.ErrClosed):
		return handler.NewHTTPError(http.StatusGone, "This page has expired, reload it to continue.")
	case errors.Is(err, subscription.ErrLoading):
		return handler.NewHTTPError(http.StatusConflict, "The subscription is still loading.")
	case errors.Is(err, subscription.ErrInFlight):
		return handler.NewHTTPError(http.StatusConflict, "A request is already in progress.")
	case errors.Is(err, subscription.ErrNotSubscribed):
		return handler.NewHTTPError(http.StatusConflict, "There is no subscription to remove.")
	default:
		return err
	}
}
