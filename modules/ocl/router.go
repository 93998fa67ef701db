package ocl

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DefaultBasePath is where the module is usually mounted.
const DefaultBasePath = "/ocl"

// Mountable is a service exposing its own routes.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which pages the module serves.
type RouterOptions struct {
	Subscription Mountable
}

// Router creates the OCL admin module router.
//
//	r.Mount(ocl.DefaultBasePath, ocl.Router(ocl.RouterOptions{
//		Subscription: ocl.NewSubscriptionHandler(svc, tr, ocl.DefaultBasePath),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Subscription != nil {
		r.Mount("/subscription", opts.Subscription.Handle())
	}
	return r
}
