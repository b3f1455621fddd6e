package registration

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubmitHandler performs the actual account creation. It is the form's only
// collaborator and receives the validated input.
type SubmitHandler func(ctx context.Context, in Input) error

// State is the position of a form in its submit lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// NotifyPolicy selects when the success notice is emitted.
type NotifyPolicy int

const (
	// NotifyOnSuccess emits the notice only after the submit handler
	// returned without error.
	NotifyOnSuccess NotifyPolicy = iota
	// NotifyOnTrigger emits the notice every time a submit is triggered,
	// before validation and regardless of the outcome.
	NotifyOnTrigger
)

// ParseNotifyPolicy maps "success" and "trigger" to a policy. The empty
// string selects NotifyOnSuccess.
func ParseNotifyPolicy(s string) (NotifyPolicy, error) {
	switch s {
	case "", "success":
		return NotifyOnSuccess, nil
	case "trigger":
		return NotifyOnTrigger, nil
	}
	return NotifyOnSuccess, fmt.Errorf("unknown notify policy %q", s)
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets the notifier used when the submit context carries none.
func WithNotifier(n Notifier) Option {
	return func(f *Form) { f.notifier = n }
}

// WithNotifyPolicy sets when the success notice is emitted.
func WithNotifyPolicy(p NotifyPolicy) Option {
	return func(f *Form) { f.policy = p }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// Form holds the state of one registration form session. It is safe for
// concurrent use.
type Form struct {
	id       string
	submit   SubmitHandler
	notifier Notifier
	policy   NotifyPolicy
	now      func() time.Time

	mu         sync.Mutex
	values     Input
	errors     Errors
	state      State
	visible    map[Field]bool
	lastActive time.Time
}

// NewForm creates an empty, idle form with both password fields masked.
// A nil submit handler turns a valid submit into a no-op.
func NewForm(submit SubmitHandler, opts ...Option) *Form {
	f := &Form{
		id:      uuid.NewString(),
		submit:  submit,
		now:     time.Now,
		errors:  make(Errors),
		visible: make(map[Field]bool, 2),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.lastActive = f.now()
	return f
}

// ID identifies the form session.
func (f *Form) ID() string {
	return f.id
}

// Set updates a single field with the user's latest input.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmitInProgress
	}
	values, err := f.values.With(field, value)
	if err != nil {
		return err
	}
	f.values = values
	f.lastActive = f.now()
	return nil
}

// Values returns a copy of the current field values.
func (f *Form) Values() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the errors recorded by the latest validation.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submitting reports whether the submit handler is running.
func (f *Form) Submitting() bool {
	return f.State() == StateSubmitting
}

// Blur validates a single field, as happens when it loses focus, and records
// the outcome. It returns nil when the field is valid.
func (f *Form) Blur(field Field) (*FieldError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fe, err := ValidateField(field, f.values)
	if err != nil {
		return nil, err
	}
	if fe != nil {
		f.errors[field] = fe
	} else {
		delete(f.errors, field)
	}
	f.lastActive = f.now()
	return fe, nil
}

// ToggleVisibility flips the masking of a password field and returns true
// when the field is now shown in plain text.
func (f *Form) ToggleVisibility(field Field) (bool, error) {
	if !field.Maskable() {
		return false, ErrNotMaskable
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.visible[field] = !f.visible[field]
	f.lastActive = f.now()
	return f.visible[field], nil
}

// Visible reports whether the field is shown in plain text. Fields without a
// toggle are never masked and always report true.
func (f *Form) Visible(field Field) bool {
	if !field.Maskable() {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible[field]
}

// Submit validates the current values and, when every rule passes, calls the
// submit handler with them. Validation failures are returned as Errors and
// the handler is not called. A failing handler's error is returned wrapped.
// The form is back to idle when Submit returns, whatever the outcome.
func (f *Form) Submit(ctx context.Context) (Errors, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	f.lastActive = f.now()
	f.state = StateValidating
	errs := Validate(f.values)
	f.errors = errs
	in := f.values
	if errs.Empty() {
		f.state = StateSubmitting
	} else {
		f.state = StateIdle
	}
	f.mu.Unlock()

	if f.policy == NotifyOnTrigger {
		f.notify(ctx, successNotice())
	}
	if !errs.Empty() {
		return maps.Clone(errs), nil
	}

	defer f.release()
	if f.submit != nil {
		if err := f.submit(ctx, in); err != nil {
			return nil, fmt.Errorf("submit registration: %w", err)
		}
	}
	if f.policy == NotifyOnSuccess {
		f.notify(ctx, successNotice())
	}
	return make(Errors), nil
}

func (f *Form) release() {
	f.mu.Lock()
	f.state = StateIdle
	f.lastActive = f.now()
	f.mu.Unlock()
}

func (f *Form) notify(ctx context.Context, n Notice) {
	notifier := NotifierFromContext(ctx)
	if notifier == nil {
		notifier = f.notifier
	}
	if notifier != nil {
		notifier.Notify(ctx, n)
	}
}

// Snapshot is a consistent view of a form, used for rendering.
type Snapshot struct {
	ID                    string
	Values                Input
	Errors                Errors
	PasswordVisible       bool
	RetypePasswordVisible bool
	Submitting            bool
}

// Snapshot captures the form's values, errors and presentation flags at once.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		ID:                    f.id,
		Values:                f.values,
		Errors:                maps.Clone(f.errors),
		PasswordVisible:       f.visible[FieldPassword],
		RetypePasswordVisible: f.visible[FieldRetypePassword],
		Submitting:            f.state == StateSubmitting,
	}
}

// Visible reports the masking state of a field in the snapshot.
func (s Snapshot) Visible(field Field) bool {
	switch field {
	case FieldPassword:
		return s.PasswordVisible
	case FieldRetypePassword:
		return s.RetypePasswordVisible
	}
	return true
}

// idle reports whether the form can be dropped at now given the ttl.
func (f *Form) idle(now time.Time, ttl time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state != StateSubmitting && now.Sub(f.lastActive) > ttl
}
