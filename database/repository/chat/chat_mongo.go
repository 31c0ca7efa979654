package chatRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Waleed-420/E-Clinical/database"
	"github.com/Waleed-420/E-Clinical/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoChatThreadRepo is the MongoDB implementation of ChatThreadRepository.
type MongoChatThreadRepo struct {
	coll *mongo.Collection
}

func NewMongoChatThreadRepo() *MongoChatThreadRepo {
	return &MongoChatThreadRepo{coll: database.DB().Collection("chat_threads")}
}

// EnsureThread upserts on the channel key with $setOnInsert, so a second
// call for the same channel leaves the existing thread untouched.
func (r *MongoChatThreadRepo) EnsureThread(ctx context.Context, thread models.ChatThread) (bool, error) {
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = time.Now()
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"channel": thread.Channel},
		bson.M{"$setOnInsert": thread},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to ensure chat thread %s: %w", thread.Channel, err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoChatThreadRepo) GetByChannel(ctx context.Context, channel string) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := r.coll.FindOne(ctx, bson.M{"channel": channel}).Decode(&thread)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat thread %s: %w", channel, err)
	}
	return &thread, nil
}
