// Package ocl provides the OCL subscription admin pages.
//
// The module renders a server-side page driven by DataStar. Each page load
// opens a subscription.View keyed by the "viewId" signal; subsequent actions
// read the bound form signals, run the view operation and answer with SSE
// patches for the form, the client signals and any feedback toast.
//
// Routes relative to the mount point:
//
//	GET    /subscription         page shell with skeleton
//	GET    /subscription/form    load the subscription and patch the form
//	POST   /subscription         save the form
//	POST   /subscription/cancel  restore the last loaded subscription
//	DELETE /subscription         unsubscribe
//
// Usage:
//
//	tr, err := ocl.NewTranslator(ctx)
//	h := ocl.NewSubscriptionHandler(svc, tr, ocl.DefaultBasePath)
//	r.Mount(ocl.DefaultBasePath, ocl.Router(ocl.RouterOptions{Subscription: h}))
package ocl
