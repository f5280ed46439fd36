package checkout

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
	"github.com/eiasinprodhan/luxury-real-estate/services/tasks"
)

// TaskEnqueuer is the slice of the asynq client the reconciler uses.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ConfirmationReconciler durably records a provider-confirmed charge with
// the platform. Invoked once per successful payment intent; its failure
// never gates the user-visible success outcome.
type ConfirmationReconciler interface {
	Reconcile(ctx context.Context, token string, conf *models.PaymentConfirmation) error
}

// DefaultReconciler calls the platform confirm endpoint and, on failure,
// schedules a background retry. By the time this runs the money has already
// moved, so the policy favors an eventually-repaired backend record over
// blocking the user with a failure screen for a payment that succeeded.
type DefaultReconciler struct {
	Platform platform.Client
	Queue    TaskEnqueuer
	Logger   *zap.Logger
}

func NewReconciler(client platform.Client, queue TaskEnqueuer, logger *zap.Logger) *DefaultReconciler {
	return &DefaultReconciler{Platform: client, Queue: queue, Logger: logger}
}

func (r *DefaultReconciler) Reconcile(ctx context.Context, token string, conf *models.PaymentConfirmation) error {
	err := r.Platform.ConfirmStripePayment(ctx, token, conf.PaymentIntentID, conf.BookingID)
	if err == nil {
		r.Logger.Info("payment reconciled",
			zap.String("bookingID", conf.BookingID),
			zap.String("paymentIntentID", conf.PaymentIntentID),
		)
		return nil
	}

	r.Logger.Error("reconciliation failed after provider confirmation",
		zap.String("bookingID", conf.BookingID),
		zap.String("paymentIntentID", conf.PaymentIntentID),
		zap.Error(err),
	)
	r.scheduleRetry(token, conf)
	return err
}

func (r *DefaultReconciler) scheduleRetry(token string, conf *models.PaymentConfirmation) {
	if r.Queue == nil {
		return
	}
	task, opts, err := tasks.NewReconcileTask(models.ReconcilePayload{
		BookingID:       conf.BookingID,
		PaymentIntentID: conf.PaymentIntentID,
		AuthToken:       token,
	})
	if err != nil {
		r.Logger.Error("failed to build reconcile retry task", zap.Error(err))
		return
	}
	if _, err := r.Queue.Enqueue(task, opts...); err != nil {
		r.Logger.Error("failed to enqueue reconcile retry", zap.Error(err))
	}
}
