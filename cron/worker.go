package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/eiasinprodhan/luxury-real-estate/config"
	"github.com/eiasinprodhan/luxury-real-estate/models"
	"github.com/eiasinprodhan/luxury-real-estate/platform"
	"github.com/eiasinprodhan/luxury-real-estate/services/tasks"
)

// InitReconcileWorker runs the async worker in background. It drains the
// reconcile-retry queue: payments the provider confirmed but the platform
// did not acknowledge synchronously.
func InitReconcileWorker(client platform.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcileRetry, handleReconcileTask(client))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(client platform.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReconcileHandler] retrying reconciliation for booking %s intent %s", p.BookingID, p.PaymentIntentID)

		err := client.ConfirmStripePayment(ctx, p.AuthToken, p.PaymentIntentID, p.BookingID)
		if err != nil {
			// Returning the error lets asynq retry with backoff.
			log.Printf("[ReconcileHandler] reconciliation still failing: %v", err)
		}
		return err
	}
}
