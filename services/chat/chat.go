package chat

import (
	"context"
	"fmt"

	chatRepo "github.com/Waleed-420/E-Clinical/database/repository/chat"
	"github.com/Waleed-420/E-Clinical/models"

	"go.uber.org/zap"
)

// ThreadService initializes the messaging thread for a doctor-patient
// channel. Initialization is idempotent: the same channel always maps to
// the one existing thread.
type ThreadService interface {
	EnsureThread(ctx context.Context, doctorID, patientID string) (*models.ChatThread, error)
}

// DefaultThreadService implements ThreadService on the chat repository.
type DefaultThreadService struct {
	Repo   chatRepo.ChatThreadRepository
	Logger *zap.Logger
}

func (s *DefaultThreadService) EnsureThread(ctx context.Context, doctorID, patientID string) (*models.ChatThread, error) {
	thread := models.ChatThread{
		Channel:   models.ChannelID(doctorID, patientID),
		DoctorID:  doctorID,
		PatientID: patientID,
	}
	created, err := s.Repo.EnsureThread(ctx, thread)
	if err != nil {
		return nil, fmt.Errorf("ensure chat thread: %w", err)
	}
	if created {
		s.Logger.Info("chat thread created", zap.String("channel", thread.Channel))
	}
	return &thread, nil
}
