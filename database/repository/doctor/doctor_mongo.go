package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Waleed-420/E-Clinical/database"
	"github.com/Waleed-420/E-Clinical/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDoctor is returned by update operations that matched no document.
var ErrNoDoctor = errors.New("doctor not found")

// MongoDoctorRepo is the MongoDB implementation of DoctorRepository.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

func NewMongoDoctorRepo() *MongoDoctorRepo {
	return &MongoDoctorRepo{coll: database.DB().Collection("doctors")}
}

func (r *MongoDoctorRepo) Create(ctx context.Context, doc *models.Doctor) error {
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert doctor: %w", err)
	}
	return nil
}

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", id, err)
	}
	return &doc, nil
}

func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor by email: %w", err)
	}
	return &doc, nil
}

// UpdateSchedule replaces the doctor's weekly schedule wholesale.
func (r *MongoDoctorRepo) UpdateSchedule(ctx context.Context, id string, schedule map[string][]models.ScheduleInterval) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"schedule": schedule, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule for doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDoctor
	}
	return nil
}

// IncrementBalance adds amount to the doctor's running balance using an
// atomic $inc, never a read-modify-write.
func (r *MongoDoctorRepo) IncrementBalance(ctx context.Context, id string, amount float64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$inc": bson.M{"balance": amount}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment balance for doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDoctor
	}
	return nil
}

func (r *MongoDoctorRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"fcmToken": token, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update fcm token for doctor %s: %w", id, err)
	}
	return nil
}
