// Package ocl contains the subscription entity of the Open Concept Lab module and a
// client for the backend REST resource that stores it.
//
// The resource is a singleton: at most one subscription exists at a time. The client
// never interprets status codes beyond transport success; callers receive the raw
// status and body and decide how to present them.
//
// # Usage
//
//	client := ocl.NewClient(ocl.Config{BaseURL: "http://localhost:8080/ws/rest/v1"})
//
//	sub, err := client.Get(ctx)
//	if err != nil {
//		// transport failure
//	}
//
//	resp, err := client.Save(ctx, ocl.Subscription{URL: "https://api.openconceptlab.org/orgs/o/collections/c"})
//	if err == nil && resp.Created() {
//		// 201
//	}
//
// Every call takes a context.Context; cancelling it aborts the in-flight request.
package ocl
