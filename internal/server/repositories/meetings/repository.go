package meetings

import (
	"context"

	"github.com/mkorotkov/clipstream/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Meeting) error
	GetByID(ctx context.Context, userID, meetingID string) (*models.Meeting, error)
	AttachVideo(ctx context.Context, userID, meetingID, videoKey string) error
	Delete(ctx context.Context, userID, meetingID string) error
	ListByProject(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Meeting, error)
}
