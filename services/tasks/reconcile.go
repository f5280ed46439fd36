package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

const TypeReconcileRetry = "payment:reconcile"

// NewReconcileTask builds the queued retry for a reconciliation that failed
// after the provider had already confirmed the charge. The platform is
// idempotent on the payment intent ID, so replays are safe.
func NewReconcileTask(payload models.ReconcilePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcileRetry, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.ProcessIn(30 * time.Second),
	}
	return task, opts, nil
}
