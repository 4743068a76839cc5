package interviews

import (
	"context"

	"github.com/mkorotkov/clipstream/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, userID, interviewID string) (*models.Interview, error)
	AttachVideo(ctx context.Context, userID, interviewID, videoKey string) error
	Delete(ctx context.Context, userID, interviewID string) error
	ListByProject(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Interview, error)
}
