package appointmentRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Waleed-420/E-Clinical/database"
	"github.com/Waleed-420/E-Clinical/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotTaken is returned when an insert loses the slot race: another
// active appointment already holds (doctorId, date, time).
var ErrSlotTaken = errors.New("slot already booked")

// MongoAppointmentRepo is the MongoDB implementation of AppointmentRepository.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}
}

// Insert persists a new appointment. The partial unique index on
// (doctorId, date, time) over active documents makes the write itself the
// conflict check; a duplicate-key error means the slot race was lost.
func (r *MongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	appt.Active = appt.IsActive()
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// ActiveByDoctorDate returns booked/confirmed appointments for one doctor
// and date, ordered by slot time.
func (r *MongoAppointmentRepo) ActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"status":   bson.M{"$in": models.ActiveStatuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoAppointmentRepo) ExistsActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"time":     timeOfDay,
		"status":   bson.M{"$in": models.ActiveStatuses},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot %s %s for doctor %s: %w", date, timeOfDay, doctorID, err)
	}
	return count > 0, nil
}

func (r *MongoAppointmentRepo) ByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return r.find(ctx, bson.M{"patientId": patientID}, opts)
}

func (r *MongoAppointmentRepo) ByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return r.find(ctx, bson.M{"doctorId": doctorID}, opts)
}

// UpdateStatus transitions an appointment and keeps the active flag in
// step so cancelled/completed appointments drop out of the uniqueness
// index and free the slot.
func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	active := status == models.StatusBooked || status == models.StatusConfirmed
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "active": active}},
	)
	if err != nil {
		return fmt.Errorf("failed to update status of appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PendingReminders returns active appointments on the given date whose
// reminder has not been sent yet.
func (r *MongoAppointmentRepo) PendingReminders(ctx context.Context, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":         date,
		"status":       bson.M{"$in": models.ActiveStatuses},
		"reminderSent": false,
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
}

// MarkReminderSent flips reminderSent false -> true. The conditional
// filter makes the transition happen at most once; the return value
// reports whether this call performed the flip.
func (r *MongoAppointmentRepo) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "reminderSent": false},
		bson.M{"$set": bson.M{"reminderSent": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder sent for appointment %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
