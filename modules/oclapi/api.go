package oclapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ocladmin/handler"
	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/requestid"
)

// DefaultResourcePath is the path pkg/ocl.Client talks to by default.
const DefaultResourcePath = "/openconceptlab/subscription"

// API serves the subscription REST resource.
type API struct {
	store  Store
	logger *slog.Logger
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the API logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAPI creates the REST resource on top of store.
func NewAPI(store Store, opts ...Option) *API {
	a := &API{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("oclapi"))
	return a
}

type listResponse struct {
	Results []ocl.Subscription `json:"results"`
}

// Handle returns the resource router. Mount it at the resource path:
//
//	r.Mount("/ws/rest/v1"+oclapi.DefaultResourcePath, api.Handle())
func (a *API) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(a.list, handler.WithErrorHandler[handler.Context, struct{}](a.handleError)))
	r.Post("/", a.wrapBody(a.create))
	r.Get("/{uuid}", handler.Wrap(a.get, handler.WithErrorHandler[handler.Context, struct{}](a.handleError)))
	r.Post("/{uuid}", a.wrapBody(a.update))
	r.Delete("/{uuid}", handler.Wrap(a.delete, handler.WithErrorHandler[handler.Context, struct{}](a.handleError)))

	return r
}

func (a *API) wrapBody(fn handler.HandlerFunc[handler.Context, ocl.Subscription]) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[handler.Context, ocl.Subscription](handler.JSONBody()),
		handler.WithErrorHandler[handler.Context, ocl.Subscription](a.handleError),
	)
}

// list answers with every subscription; there is at most one.
func (a *API) list(ctx handler.Context, _ struct{}) handler.Response {
	sub, err := a.store.Current(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return handler.JSON(listResponse{Results: []ocl.Subscription{}})
	case err != nil:
		return handler.Error(err)
	}
	return handler.JSON(listResponse{Results: []ocl.Subscription{sub}})
}

func (a *API) get(ctx handler.Context, _ struct{}) handler.Response {
	sub, err := a.lookup(ctx, chi.URLParam(ctx.Request(), "uuid"))
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(sub)
}

// create stores a new subscription, or updates the existing one since only
// one may exist.
func (a *API) create(ctx handler.Context, req ocl.Subscription) handler.Response {
	sub, err := normalize(req)
	if err != nil {
		return handler.Error(err)
	}

	saved, created, err := a.store.Put(ctx, sub)
	if err != nil {
		return handler.Error(err)
	}
	if !created {
		a.logger.InfoContext(ctx, "subscription updated", slog.Any("subscription", saved))
		return handler.JSON(saved)
	}
	a.logger.InfoContext(ctx, "subscription created", slog.Any("subscription", saved))
	return handler.JSON(saved, handler.WithJSONStatus(http.StatusCreated))
}

func (a *API) update(ctx handler.Context, req ocl.Subscription) handler.Response {
	sub, err := normalize(req)
	if err != nil {
		return handler.Error(err)
	}
	sub.UUID = chi.URLParam(ctx.Request(), "uuid")

	saved, err := a.store.Update(ctx, sub)
	if err != nil {
		return handler.Error(err)
	}
	a.logger.InfoContext(ctx, "subscription updated", slog.Any("subscription", saved))
	return handler.JSON(saved)
}

func (a *API) delete(ctx handler.Context, _ struct{}) handler.Response {
	id := chi.URLParam(ctx.Request(), "uuid")
	if err := a.store.Delete(ctx, id); err != nil {
		return handler.Error(err)
	}
	a.logger.InfoContext(ctx, "subscription deleted", slog.String("uuid", id))
	return handler.Empty()
}

func (a *API) lookup(ctx handler.Context, id string) (ocl.Subscription, error) {
	sub, err := a.store.Current(ctx)
	if err != nil {
		return ocl.Subscription{}, err
	}
	if sub.UUID != id {
		return ocl.Subscription{}, ErrNotFound
	}
	return sub, nil
}

// handleError answers with a plain-text message, as the subscription
// resource does for every failure.
func (a *API) handleError(ctx handler.Context, err error) {
	w := ctx.ResponseWriter()
	r := ctx.Request()

	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	var (
		httpErr       handler.HTTPError
		validationErr handler.ValidationError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		status, msg = http.StatusNotFound, ErrNotFound.Error()
	case errors.As(err, &validationErr):
		status, msg = http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &httpErr):
		status, msg = httpErr.Code, httpErr.Message
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.LogAttrs(r.Context(), level, "subscription api error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.StatusCode(status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
