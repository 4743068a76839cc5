package projects

import (
	"context"

	"github.com/mkorotkov/clipstream/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, userID, projectID string) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, userID, projectID string) error
	List(ctx context.Context, userID string, limit, offset int) ([]*models.Project, error)
}
