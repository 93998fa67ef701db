package subscription

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/ocladmin/pkg/cache"
	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
)

// Backend is the remote subscription resource. *ocl.Client satisfies it.
type Backend interface {
	Get(ctx context.Context) (*ocl.Subscription, error)
	Save(ctx context.Context, sub ocl.Subscription) (ocl.Response, error)
	Delete(ctx context.Context, sub ocl.Subscription) (ocl.Response, error)
}

// Form holds the editable fields of a view.
type Form struct {
	URL                  string
	Token                string
	SubscribedToSnapshot bool
	ValidationType       ocl.ValidationType
}

// DefaultForm is the form of a view with no subscription.
func DefaultForm() Form {
	return formOf(ocl.Default())
}

// ValidationDisabled is the checkbox projection of ValidationType.
func (f Form) ValidationDisabled() bool {
	return f.ValidationType == ocl.ValidationNone
}

func formOf(s ocl.Subscription) Form {
	return Form{
		URL:                  s.URL,
		Token:                s.Token,
		SubscribedToSnapshot: s.SubscribedToSnapshot,
		ValidationType:       s.ValidationType,
	}
}

// State is a point-in-time copy of a view.
type State struct {
	ID            string
	Loading       bool
	Subscribed    bool
	Submitting    bool
	Unsubscribing bool
	Form          Form
}

type action uint8

const (
	actionSubmit action = iota
	actionUnsubscribe
)

// View is the server-side state of one rendered subscription page.
// Fields change only through its setters and actions.
type View struct {
	id       string
	backend  Backend
	resource *cache.Resource[*ocl.Subscription]
	cacheKey string
	logger   *slog.Logger

	mu       sync.Mutex
	loading  bool
	closed   bool
	remote   *ocl.Subscription
	form     Form
	inflight map[action]context.CancelFunc
}

func newView(id string, s *Service) *View {
	return &View{
		id:       id,
		backend:  s.backend,
		resource: s.resource,
		cacheKey: s.cacheKey,
		logger:   s.logger.With(logger.Component("subscription_view"), logger.ViewID(id)),
		loading:  true,
		form:     DefaultForm(),
		inflight: make(map[action]context.CancelFunc, 2),
	}
}

// ID returns the view identifier.
func (v *View) ID() string {
	return v.id
}

// State returns a copy of the current view state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, submitting := v.inflight[actionSubmit]
	_, unsubscribing := v.inflight[actionUnsubscribe]
	return State{
		ID:            v.id,
		Loading:       v.loading,
		Subscribed:    v.remote != nil,
		Submitting:    submitting,
		Unsubscribing: unsubscribing,
		Form:          v.form,
	}
}

// Load fetches the current subscription and copies it into the form.
// Only the first call fetches; once loading has ended Load is a no-op, so
// re-rendering a view never overwrites its edits.
// A failed fetch ends loading with the form unchanged; the error is logged
// and returned so the caller may decide whether to report it.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if !v.loading {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	remote, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loading {
		// a concurrent Load won
		return nil
	}
	v.loading = false
	if err != nil {
		v.logger.WarnContext(ctx, "failed to load subscription", logger.Error(err))
		return err
	}
	v.setRemote(remote)
	if remote != nil {
		v.form = formOf(*remote)
	}
	return nil
}

func (v *View) fetch(ctx context.Context) (*ocl.Subscription, error) {
	if v.resource == nil {
		return v.backend.Get(ctx)
	}
	return v.resource.Load(ctx, v.cacheKey, v.backend.Get)
}

// SetURL sets the subscription URL field.
func (v *View) SetURL(url string) {
	v.edit(func(f *Form) { f.URL = url })
}

// SetToken sets the API token field.
func (v *View) SetToken(token string) {
	v.edit(func(f *Form) { f.Token = token })
}

// SetSubscribedToSnapshot sets the snapshot flag.
func (v *View) SetSubscribedToSnapshot(on bool) {
	v.edit(func(f *Form) { f.SubscribedToSnapshot = on })
}

// SetValidationType sets the validation mode.
func (v *View) SetValidationType(vt ocl.ValidationType) {
	v.edit(func(f *Form) { f.ValidationType = vt })
}

// SetValidationDisabled sets NONE when checked and FULL otherwise.
func (v *View) SetValidationDisabled(disabled bool) {
	vt := ocl.ValidationFull
	if disabled {
		vt = ocl.ValidationNone
	}
	v.SetValidationType(vt)
}

func (v *View) edit(fn func(*Form)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.form)
}

// Reset discards local edits and restores the last known subscription.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.remote != nil {
		v.form = formOf(*v.remote)
		return
	}
	v.form = DefaultForm()
}

// Submit writes the form to the backend. The payload is the last known
// subscription with the form fields on top, so server-only attributes survive.
// Guard errors mean nothing was sent; every other outcome is in the Feedback.
func (v *View) Submit(ctx context.Context) (Feedback, error) {
	v.mu.Lock()
	if err := v.guard(actionSubmit); err != nil {
		v.mu.Unlock()
		return Feedback{}, err
	}
	payload := v.payload()
	actx := v.begin(ctx, actionSubmit)
	v.mu.Unlock()
	defer v.end(actionSubmit)

	resp, err := v.backend.Save(actx, payload)
	fb := MapSave(resp, err)
	if fb.Kind != KindSuccess {
		v.logger.WarnContext(ctx, "failed to save subscription",
			logger.StatusCode(resp.StatusCode),
			logger.Error(err),
		)
		return fb, nil
	}

	saved, ok := resp.Subscription()
	if !ok {
		saved = payload
	} else if saved.UUID == "" {
		saved.UUID = payload.UUID
	}

	v.mu.Lock()
	v.setRemote(&saved)
	v.mu.Unlock()
	if v.resource != nil {
		v.resource.Mutate(ctx, v.cacheKey, &saved)
	}
	v.logger.InfoContext(ctx, "subscription saved",
		logger.StatusCode(resp.StatusCode),
		slog.Any("subscription", saved),
	)
	return fb, nil
}

// Unsubscribe deletes the current subscription. On success the form returns
// to defaults and the cached copy is dropped.
func (v *View) Unsubscribe(ctx context.Context) (Feedback, error) {
	v.mu.Lock()
	if err := v.guard(actionUnsubscribe); err != nil {
		v.mu.Unlock()
		return Feedback{}, err
	}
	if v.remote == nil {
		v.mu.Unlock()
		return Feedback{}, ErrNotSubscribed
	}
	target := v.remote.Clone()
	actx := v.begin(ctx, actionUnsubscribe)
	v.mu.Unlock()
	defer v.end(actionUnsubscribe)

	resp, err := v.backend.Delete(actx, target)
	fb := MapDelete(resp, err)
	if fb.Kind != KindSuccess {
		v.logger.WarnContext(ctx, "failed to remove subscription",
			logger.StatusCode(resp.StatusCode),
			logger.Error(err),
		)
		return fb, nil
	}

	v.mu.Lock()
	v.remote = nil
	v.form = DefaultForm()
	v.mu.Unlock()
	if v.resource != nil {
		v.resource.Invalidate(ctx, v.cacheKey)
	}
	v.logger.InfoContext(ctx, "subscription removed")
	return fb, nil
}

// Close cancels in-flight requests. Later actions return ErrClosed.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	for a, cancel := range v.inflight {
		cancel()
		delete(v.inflight, a)
	}
}

// guard must be called with mu held.
func (v *View) guard(a action) error {
	switch {
	case v.closed:
		return ErrClosed
	case v.loading:
		return ErrLoading
	}
	if _, busy := v.inflight[a]; busy {
		return ErrInFlight
	}
	return nil
}

// begin must be called with mu held.
func (v *View) begin(ctx context.Context, a action) context.Context {
	actx, cancel := context.WithCancel(ctx)
	v.inflight[a] = cancel
	return actx
}

func (v *View) end(a action) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if cancel, ok := v.inflight[a]; ok {
		cancel()
		delete(v.inflight, a)
	}
}

// payload must be called with mu held.
func (v *View) payload() ocl.Subscription {
	base := ocl.Subscription{}
	if v.remote != nil {
		base = v.remote.Clone()
	}
	base.URL = v.form.URL
	base.Token = v.form.Token
	base.SubscribedToSnapshot = v.form.SubscribedToSnapshot
	base.ValidationType = v.form.ValidationType
	return base
}

// setRemote must be called with mu held.
func (v *View) setRemote(s *ocl.Subscription) {
	if s == nil {
		v.remote = nil
		return
	}
	c := s.Clone()
	v.remote = &c
}
