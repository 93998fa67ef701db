// Package subscription keeps the server-side state of the OCL subscription
// settings page.
//
// A View mirrors the remote subscription into an editable Form, sends writes
// and deletes through a Backend and turns their outcome into Feedback:
//
//	svc := subscription.NewService(client, subscription.WithCache(resource))
//	view := svc.Open()
//	_ = view.Load(ctx)
//	view.SetToken("new-token")
//	fb, err := view.Submit(ctx)
//
// Submit and Unsubscribe refuse to run while the view is loading or while the
// same action is already in flight. Close cancels in-flight requests.
package subscription
