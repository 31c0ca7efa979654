package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Waleed-420/E-Clinical/config"
	"github.com/Waleed-420/E-Clinical/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask wraps a payload into an asynq task.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReminderSend, b), nil
}

// AsynqDispatcher queues one reminder task per participant. Actual FCM
// delivery happens in the cron worker consuming the queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, appt models.Appointment) error {
	payloads := []models.ReminderPayload{
		{
			AppointmentID: appt.ID,
			Target:        "patient",
			ID:            appt.PatientID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("Your consultation starts at %s. Please be ready to join.", appt.Time),
			Channel:       appt.Channel,
			Date:          appt.Date,
			Time:          appt.Time,
		},
		{
			AppointmentID: appt.ID,
			Target:        "doctor",
			ID:            appt.DoctorID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("Your consultation starts at %s. Your patient will be waiting.", appt.Time),
			Channel:       appt.Channel,
			Date:          appt.Date,
			Time:          appt.Time,
		},
	}

	for _, p := range payloads {
		task, err := NewReminderTask(p)
		if err != nil {
			return fmt.Errorf("build reminder task for %s: %w", p.Target, err)
		}
		if _, err := d.client.EnqueueContext(ctx, task); err != nil {
			return fmt.Errorf("enqueue reminder for %s: %w", p.Target, err)
		}
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
