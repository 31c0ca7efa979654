package chatRepo

import (
	"context"

	"github.com/Waleed-420/E-Clinical/models"
)

// ChatThreadRepository stores doctor-patient chat threads keyed by channel.
// EnsureThread is create-or-fetch: calling it twice for the same channel
// yields one thread. The returned bool reports whether this call created it.
type ChatThreadRepository interface {
	EnsureThread(ctx context.Context, thread models.ChatThread) (bool, error)
	GetByChannel(ctx context.Context, channel string) (*models.ChatThread, error)
	EnsureIndexes() error
}
