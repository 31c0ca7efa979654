package models

import "time"

// User represents a platform account (patients and doctors sign in the
// same way; Role distinguishes them).
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	DOB          string    `bson:"dob" json:"dob"` // "YYYY-MM-DD"
	Gender       string    `bson:"gender" json:"gender"`
	Role         string    `bson:"role" json:"role"` // "patient", "doctor", "lab"
	PasswordHash string    `bson:"password" json:"-"`
	Verified     bool      `bson:"verified" json:"verified"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
