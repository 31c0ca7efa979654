package notification

import (
	"context"
	"fmt"

	doctorRepo "github.com/Waleed-420/E-Clinical/database/repository/doctor"
	userRepo "github.com/Waleed-420/E-Clinical/database/repository/user"
	"github.com/Waleed-420/E-Clinical/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
	SendDoctorPush(ctx context.Context, doctorID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users   userRepo.UserRepository
	Doctors doctorRepo.DoctorRepository
}

// SendPatientPush looks up a patient's FCM token and sends a push.
func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	u, err := s.Users.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if u == nil || u.FCMToken == "" {
		return fmt.Errorf("SendPatientPush: patient %s has no FCM token", patientID)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPatientPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendDoctorPush looks up a doctor's FCM token and sends a high-priority push.
func (s *DefaultNotificationService) SendDoctorPush(
	ctx context.Context,
	doctorID, title, body string,
	data map[string]string,
) error {
	d, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("SendDoctorPush: could not find doctor %s: %w", doctorID, err)
	}
	if d == nil || d.FCMToken == "" {
		return fmt.Errorf("SendDoctorPush: doctor %s has no FCM token", doctorID)
	}

	msg := &messaging.Message{
		Token: d.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendDoctorPush: failed to send FCM message: %w", err)
	}
	return nil
}
