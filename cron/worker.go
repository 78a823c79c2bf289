package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"clinicvoice/config"
	"clinicvoice/models"
	"clinicvoice/services/notification"
	"clinicvoice/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the worker and the scheduler.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartSMSWorker runs the SMS worker in the background. The returned server
// must be shut down by the caller.
func StartSMSWorker(sender notification.SMSSender, logger *zap.Logger) (*asynq.Server, error) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSMSSend, handleSMSTask(sender, logger))

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start sms worker: %w", err)
	}
	logger.Info("sms worker started")
	return srv, nil
}

func handleSMSTask(sender notification.SMSSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SMSPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid sms payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := sender.SendSMS(ctx, p.To, p.Body); err != nil {
			logger.Warn("sms delivery failed", zap.String("kind", p.Kind), zap.Error(err))
			return err
		}
		logger.Info("sms delivered", zap.String("kind", p.Kind))
		return nil
	}
}
