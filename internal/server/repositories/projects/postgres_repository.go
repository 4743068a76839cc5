package projects

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) error {

	query :=
		`INSERT INTO projects (project_id, user_id, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.ProjectID, p.UserID, p.Name, p.Description).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, projectID string) (*models.Project, error) {
	query :=
		`SELECT project_id, user_id, name, description, created_at, updated_at FROM projects
		 WHERE project_id = $1 AND user_id = $2
		 `

	p := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, projectID, userID).
		Scan(&p.ProjectID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) error {

	query :=
		`UPDATE projects SET name = $3, description = $4, updated_at = now()
		 WHERE project_id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, p.ProjectID, p.UserID, p.Name, p.Description)
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

func (r *PostgresRepository) Delete(ctx context.Context, userID, projectID string) error {

	query := `DELETE FROM projects WHERE project_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, projectID, userID)
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

func (r *PostgresRepository) List(ctx context.Context, userID string, limit, offset int) ([]*models.Project, error) {
	query :=
		`SELECT project_id, user_id, name, description, created_at, updated_at FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ProjectID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
