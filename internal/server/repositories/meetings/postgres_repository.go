package meetings

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

func (r *PostgresRepository) Create(ctx context.Context, m *models.Meeting) error {

	query :=
		`INSERT INTO meetings (meeting_id, project_id, user_id, title, held_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.MeetingID, m.ProjectID, m.UserID, m.Title, m.HeldAt).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, meetingID string) (*models.Meeting, error) {
	query :=
		`SELECT meeting_id, project_id, user_id, title, video_key, held_at, created_at, updated_at FROM meetings
		 WHERE meeting_id = $1 AND user_id = $2
		 `

	m := &models.Meeting{}
	err := r.db.QueryRowContext(ctx, query, meetingID, userID).
		Scan(&m.MeetingID, &m.ProjectID, &m.UserID, &m.Title, &m.VideoKey, &m.HeldAt, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) AttachVideo(ctx context.Context, userID, meetingID, videoKey string) error {

	query :=
		`UPDATE meetings SET video_key = $3, updated_at = now()
		 WHERE meeting_id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, meetingID, userID, videoKey)
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

func (r *PostgresRepository) Delete(ctx context.Context, userID, meetingID string) error {

	query := `DELETE FROM meetings WHERE meeting_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, meetingID, userID)
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

func (r *PostgresRepository) ListByProject(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Meeting, error) {
	query :=
		`SELECT meeting_id, project_id, user_id, title, video_key, held_at, created_at, updated_at FROM meetings
		 WHERE project_id = $1 AND user_id = $2
		 ORDER BY created_at
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Meeting
	for rows.Next() {
		m := &models.Meeting{}
		if err := rows.Scan(&m.MeetingID, &m.ProjectID, &m.UserID, &m.Title, &m.VideoKey, &m.HeldAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
