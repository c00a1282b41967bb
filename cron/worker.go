package cron

import (
	"context"
	"encoding/json"
	"time"

	"ayursutra/config"
	"ayursutra/models"
	"ayursutra/services/notification"
	"ayursutra/services/tasks"
	"ayursutra/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifier notification.Notifier) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifier))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier notification.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		message := notification.ReminderMessage(models.Appointment{
			ID:       p.AppointmentID,
			ClinicID: p.ClinicID,
			UserName: p.UserName,
			Slot:     p.Slot,
			Date:     p.Date,
		})
		if err := notifier.Send(ctx, notification.ReminderSubject, message); err != nil {
			logger.Error("failed to deliver reminder",
				zap.String("appointmentId", p.AppointmentID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
