package interviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/dbx"
	"github.com/mkorotkov/clipstream/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, iv *models.Interview) error {

	query :=
		`INSERT INTO interviews (interview_id, project_id, user_id, subject)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		iv.InterviewID, iv.ProjectID, iv.UserID, iv.Subject).Scan(&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, interviewID string) (*models.Interview, error) {
	query :=
		`SELECT interview_id, project_id, user_id, subject, video_key, created_at, updated_at FROM interviews
		 WHERE interview_id = $1 AND user_id = $2
		 `

	iv := &models.Interview{}
	err := r.db.QueryRowContext(ctx, query, interviewID, userID).
		Scan(&iv.InterviewID, &iv.ProjectID, &iv.UserID, &iv.Subject, &iv.VideoKey, &iv.CreatedAt, &iv.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return iv, nil
}

func (r *PostgresRepository) AttachVideo(ctx context.Context, userID, interviewID, videoKey string) error {

	query :=
		`UPDATE interviews SET video_key = $3, updated_at = now()
		 WHERE interview_id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, interviewID, userID, videoKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, interviewID string) error {

	query := `DELETE FROM interviews WHERE interview_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, interviewID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Interview, error) {
	query :=
		`SELECT interview_id, project_id, user_id, subject, video_key, created_at, updated_at FROM interviews
		 WHERE project_id = $1 AND user_id = $2
		 ORDER BY created_at
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Interview
	for rows.Next() {
		iv := &models.Interview{}
		if err := rows.Scan(&iv.InterviewID, &iv.ProjectID, &iv.UserID, &iv.Subject, &iv.VideoKey, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
