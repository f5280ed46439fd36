package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/services/tasks"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, f.err
}

func confirmation() *models.PaymentConfirmation {
	return &models.PaymentConfirmation{
		BookingID:       "B1",
		Provider:        models.ProviderStripe,
		PaymentIntentID: "pi_abc",
		TransactionID:   "pi_abc",
	}
}

func TestReconcileSuccess(t *testing.T) {
	plat := &stubPlatform{}
	queue := &fakeEnqueuer{}
	r := NewReconciler(plat, queue, zap.NewNop())

	err := r.Reconcile(context.Background(), "tok", confirmation())
	require.NoError(t, err)
	assert.Equal(t, []string{"pi_abc"}, plat.confirmCalls)
	assert.Empty(t, queue.tasks, "no retry scheduled when the platform acknowledges")
}

func TestReconcileFailureSchedulesRetry(t *testing.T) {
	plat := &stubPlatform{confirmErr: assert.AnError}
	queue := &fakeEnqueuer{}
	r := NewReconciler(plat, queue, zap.NewNop())

	err := r.Reconcile(context.Background(), "tok", confirmation())
	require.Error(t, err)

	require.Len(t, queue.tasks, 1)
	task := queue.tasks[0]
	assert.Equal(t, tasks.TypeReconcileRetry, task.Type())

	var p models.ReconcilePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "B1", p.BookingID)
	assert.Equal(t, "pi_abc", p.PaymentIntentID)
	assert.Equal(t, "tok", p.AuthToken)
}

func TestReconcileWithoutQueue(t *testing.T) {
	plat := &stubPlatform{confirmErr: assert.AnError}
	r := NewReconciler(plat, nil, zap.NewNop())

	// A nil queue degrades to log-only; the error still propagates.
	err := r.Reconcile(context.Background(), "tok", confirmation())
	assert.Error(t, err)
}
