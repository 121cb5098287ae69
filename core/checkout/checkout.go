// Package checkout is the simulated purchase flow of a course page.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core/catalog"
)

// Step is where a Flow stands.
type Step string

const (
	Browsing    Step = "browsing"
	PaymentForm Step = "payment_form"
	Processing  Step = "processing"
	Completed   Step = "completed"
)

// Redirect targets
const (
	SignInPath    = "/signin"
	DashboardPath = "/dashboard"
)

var (
	// errors
	ErrNotAuthenticated  = errors.New("sign in to enroll")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrInvalidMethod     = errors.New("unknown payment method")
)

// CardDetails are collected by the payment form and never validated nor stored.
type CardDetails struct {
	Number string `form:"cardNumber" json:"cardNumber"`
	Expiry string `form:"expiry" json:"expiry"`
	CVV    string `form:"cvv" json:"cvv"`
	Name   string `form:"cardName" json:"cardName"`
}

type Receipt struct {
	Redirect string          `json:"redirect"`
	Payment  catalog.Payment `json:"payment"`
}

// Flow is safe for concurrent use. A Flow never records an enrollment.
type Flow struct {
	course  catalog.Course
	userID  string
	latency time.Duration

	mu     sync.Mutex
	step   Step
	method string
}

func NewFlow(course catalog.Course, userID string, latency time.Duration) *Flow {
	return &Flow{
		course:  course,
		userID:  userID,
		latency: latency,
		step:    Browsing,
		method:  catalog.MethodCreditCard,
	}
}

func (f *Flow) Course() catalog.Course { return f.course }

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Method() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

// Enroll opens the payment form. Anonymous visitors are sent to SignInPath instead and the flow does not move.
func (f *Flow) Enroll(authenticated bool) (string, error) {
	if !authenticated {
		return SignInPath, ErrNotAuthenticated
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case Browsing, PaymentForm:
		f.step = PaymentForm
		return "", nil
	default:
		return "", ErrInvalidTransition
	}
}

func (f *Flow) SelectMethod(method string) error {
	valid := false
	for _, m := range catalog.PaymentMethods {
		if m == method {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidMethod
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != PaymentForm {
		return ErrInvalidTransition
	}
	f.method = method
	return nil
}

// Cancel closes the payment form.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != PaymentForm {
		return ErrInvalidTransition
	}
	f.step = Browsing
	return nil
}

// Submit pretends to process the payment; it always succeeds once the delay elapses.
// If ctx ends first the flow goes back to the payment form.
func (f *Flow) Submit(ctx context.Context, _ CardDetails) (Receipt, error) {
	f.mu.Lock()
	if f.step != PaymentForm {
		f.mu.Unlock()
		return Receipt{}, ErrInvalidTransition
	}
	f.step = Processing
	method := f.method
	f.mu.Unlock()

	timer := time.NewTimer(f.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.step = PaymentForm
		f.mu.Unlock()
		return Receipt{}, ctx.Err()
	case <-timer.C:
	}

	f.mu.Lock()
	f.step = Completed
	f.mu.Unlock()

	return Receipt{
		Redirect: DashboardPath,
		Payment: catalog.Payment{
			ID:        uuid.NewString(),
			UserID:    f.userID,
			CourseID:  f.course.ID,
			Amount:    f.course.Price,
			Status:    catalog.PaymentCompleted,
			Method:    method,
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}

// Registry holds the flows of one visitor, one per course.
type Registry struct {
	latency time.Duration

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewRegistry(latency time.Duration) *Registry {
	return &Registry{latency: latency, flows: make(map[string]*Flow)}
}

// Flow returns the live flow for course, starting a fresh one if there is none
// or the previous one completed or belongs to another user.
func (r *Registry) Flow(course catalog.Course, userID string) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.flows[course.ID]; ok && f.userID == userID && f.Step() != Completed {
		return f
	}
	f := NewFlow(course, userID, r.latency)
	r.flows[course.ID] = f
	return f
}

// Peek returns the current flow for courseID without creating one.
func (r *Registry) Peek(courseID string) (*Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[courseID]
	return f, ok
}
