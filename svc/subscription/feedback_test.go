package subscription_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/svc/subscription"
)

func TestMapSave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp ocl.Response
		err  error
		want subscription.Feedback
	}{
		{
			name: "created",
			resp: ocl.Response{StatusCode: http.StatusCreated},
			want: subscription.Feedback{Kind: subscription.KindSuccess, TitleKey: subscription.KeySubscriptionCreated},
		},
		{
			name: "updated",
			resp: ocl.Response{StatusCode: http.StatusOK},
			want: subscription.Feedback{Kind: subscription.KindSuccess, TitleKey: subscription.KeySubscriptionUpdated},
		},
		{
			name: "no content is still an update",
			resp: ocl.Response{StatusCode: http.StatusNoContent},
			want: subscription.Feedback{Kind: subscription.KindSuccess, TitleKey: subscription.KeySubscriptionUpdated},
		},
		{
			name: "client error carries body",
			resp: ocl.Response{StatusCode: http.StatusBadRequest, Body: `{"error":"url is required"}`},
			want: subscription.Feedback{
				Kind:     subscription.KindError,
				TitleKey: subscription.KeyErrorSavingSubscription,
				Detail:   `{"error":"url is required"}`,
				Critical: true,
			},
		},
		{
			name: "redirect is an error",
			resp: ocl.Response{StatusCode: http.StatusFound, Body: "moved"},
			want: subscription.Feedback{
				Kind:     subscription.KindError,
				TitleKey: subscription.KeyErrorSavingSubscription,
				Detail:   "moved",
				Critical: true,
			},
		},
		{
			name: "transport error",
			err:  errors.New("dial tcp: refused"),
			want: subscription.Feedback{
				Kind:     subscription.KindError,
				TitleKey: subscription.KeyErrorSavingSubscription,
				Detail:   "dial tcp: refused",
				Critical: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, subscription.MapSave(tt.resp, tt.err))
		})
	}
}

func TestMapDelete(t *testing.T) {
	t.Parallel()

	t.Run("only 204 succeeds", func(t *testing.T) {
		t.Parallel()

		fb := subscription.MapDelete(ocl.Response{StatusCode: http.StatusNoContent}, nil)
		assert.Equal(t, subscription.KindSuccess, fb.Kind)
		assert.Equal(t, subscription.KeyUnsubscribed, fb.TitleKey)
		assert.False(t, fb.Critical)

		for _, status := range []int{http.StatusOK, http.StatusAccepted, http.StatusNotFound, http.StatusInternalServerError} {
			fb := subscription.MapDelete(ocl.Response{StatusCode: status, Body: "body"}, nil)
			assert.Equal(t, subscription.KindError, fb.Kind, "status %d", status)
			assert.Equal(t, subscription.KeyErrorUnsubscribing, fb.TitleKey)
			assert.Equal(t, "body", fb.Detail)
			assert.True(t, fb.Critical)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		fb := subscription.MapDelete(ocl.Response{}, errors.New("timeout"))
		assert.Equal(t, subscription.KindError, fb.Kind)
		assert.Equal(t, "timeout", fb.Detail)
	})
}

func TestFeedback_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, subscription.Feedback{}.IsZero())
	assert.False(t, subscription.MapSave(ocl.Response{StatusCode: http.StatusOK}, nil).IsZero())
	assert.Equal(t, "none", subscription.KindNone.String())
	assert.Equal(t, "success", subscription.KindSuccess.String())
	assert.Equal(t, "error", subscription.KindError.String())
}
