package models

import "time"

// ChatThread is the messaging thread shared by a doctor and a patient.
// Channel is unique; creating a thread for an existing channel is a no-op.
type ChatThread struct {
	Channel   string    `bson:"channel" json:"channel"`
	DoctorID  string    `bson:"doctorId" json:"doctorId"`
	PatientID string    `bson:"patientId" json:"patientId"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
