package subscription

import (
	"net/http"

	"github.com/dmitrymomot/ocladmin/pkg/ocl"
)

// Translation keys used for feedback titles.
const (
	KeySubscriptionCreated     = "subscriptionCreated"
	KeySubscriptionUpdated     = "subscriptionUpdated"
	KeyErrorSavingSubscription = "errorSavingSubscription"
	KeyUnsubscribed            = "unsubscribed"
	KeyErrorUnsubscribing      = "errorUnsubscribing"
)

// Kind discriminates Feedback.
type Kind uint8

const (
	// KindNone means there is nothing to show yet.
	KindNone Kind = iota
	// KindSuccess is a transient toast.
	KindSuccess
	// KindError is a blocking notification.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// Feedback is what the user sees after an action completes.
// Detail carries the server response verbatim for errors.
type Feedback struct {
	Kind       Kind
	TitleKey   string
	MessageKey string
	Detail     string
	Critical   bool
}

// IsZero reports a KindNone feedback.
func (f Feedback) IsZero() bool {
	return f.Kind == KindNone
}

// MapSave maps the outcome of a write. Any 2xx is a success; 201 means the
// subscription was created.
func MapSave(resp ocl.Response, err error) Feedback {
	if err != nil {
		return failure(KeyErrorSavingSubscription, err.Error())
	}
	if !resp.OK() {
		return failure(KeyErrorSavingSubscription, resp.Body)
	}
	if resp.Created() {
		return success(KeySubscriptionCreated)
	}
	return success(KeySubscriptionUpdated)
}

// MapDelete maps the outcome of a delete. Only 204 counts as success.
func MapDelete(resp ocl.Response, err error) Feedback {
	if err != nil {
		return failure(KeyErrorUnsubscribing, err.Error())
	}
	if resp.StatusCode != http.StatusNoContent {
		return failure(KeyErrorUnsubscribing, resp.Body)
	}
	return success(KeyUnsubscribed)
}

func success(key string) Feedback {
	return Feedback{Kind: KindSuccess, TitleKey: key}
}

func failure(key, detail string) Feedback {
	return Feedback{Kind: KindError, TitleKey: key, Detail: detail, Critical: true}
}
