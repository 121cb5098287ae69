package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core/catalog"
)

const latency = 20 * time.Millisecond

func newFlow() *Flow {
	return NewFlow(catalog.Course{ID: "1", Price: 89.99}, "u1", latency)
}

func TestFlow_Enroll_anonymous(t *testing.T) {
	f := newFlow()
	redirect, err := f.Enroll(false)
	assert.Equal(t, ErrNotAuthenticated, err)
	assert.Equal(t, SignInPath, redirect)
	assert.Equal(t, Browsing, f.Step())
}

func TestFlow_happyPath(t *testing.T) {
	f := newFlow()

	redirect, err := f.Enroll(true)
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, PaymentForm, f.Step())
	assert.Equal(t, catalog.MethodCreditCard, f.Method())

	require.NoError(t, f.SelectMethod(catalog.MethodPayPal))
	assert.Equal(t, ErrInvalidMethod, f.SelectMethod("bitcoin"))

	start := time.Now()
	receipt, err := f.Submit(context.Background(), CardDetails{}) // empty card fields are accepted
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), latency)

	assert.Equal(t, Completed, f.Step())
	assert.Equal(t, DashboardPath, receipt.Redirect)
	assert.Equal(t, catalog.PaymentCompleted, receipt.Payment.Status)
	assert.Equal(t, catalog.MethodPayPal, receipt.Payment.Method)
	assert.Equal(t, 89.99, receipt.Payment.Amount)
	assert.Equal(t, "1", receipt.Payment.CourseID)
}

func TestFlow_processingStep(t *testing.T) {
	f := newFlow()
	_, err := f.Enroll(true)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_, _ = f.Submit(context.Background(), CardDetails{})
		close(done)
	}()
	time.Sleep(latency / 4)
	assert.Equal(t, Processing, f.Step())
	assert.Equal(t, ErrInvalidTransition, f.Cancel())
	<-done
}

func TestFlow_Cancel(t *testing.T) {
	f := newFlow()
	assert.Equal(t, ErrInvalidTransition, f.Cancel())

	_, err := f.Enroll(true)
	require.NoError(t, err)
	require.NoError(t, f.Cancel())
	assert.Equal(t, Browsing, f.Step())
}

func TestFlow_invalidTransitions(t *testing.T) {
	f := newFlow()
	_, err := f.Submit(context.Background(), CardDetails{})
	assert.Equal(t, ErrInvalidTransition, err)
	assert.Equal(t, ErrInvalidTransition, f.SelectMethod(catalog.MethodStripe))
}

func TestFlow_Submit_cancelled(t *testing.T) {
	f := newFlow()
	_, err := f.Enroll(true)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Submit(ctx, CardDetails{})
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, PaymentForm, f.Step())
}

func TestRegistry_Flow(t *testing.T) {
	r := NewRegistry(latency)
	c := catalog.Course{ID: "1"}

	f1 := r.Flow(c, "u1")
	assert.Same(t, f1, r.Flow(c, "u1"))
	assert.NotSame(t, f1, r.Flow(c, "u2"))

	f2 := r.Flow(c, "u2")
	_, err := f2.Enroll(true)
	require.NoError(t, err)
	_, err = f2.Submit(context.Background(), CardDetails{})
	require.NoError(t, err)
	assert.NotSame(t, f2, r.Flow(c, "u2"), "a completed flow is replaced")

	_, ok := r.Peek("2")
	assert.False(t, ok)
}
