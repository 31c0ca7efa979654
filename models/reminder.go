package models

// ReminderPayload is the task payload queued for a due appointment
// reminder. Target is "patient" or "doctor".
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Target        string `json:"target"`
	ID            string `json:"id"` // recipient user/doctor id
	Title         string `json:"title"`
	Body          string `json:"body"`
	Channel       string `json:"channel"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
