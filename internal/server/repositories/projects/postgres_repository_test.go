package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/clipstream/internal/common"
	"github.com/mkorotkov/clipstream/internal/server/models"
)

func setupMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	r, mock := setupMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("p-1", "u-1", "study", "desc").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &models.Project{ProjectID: "p-1", UserID: "u-1", Name: "study", Description: "desc"}
	require.NoError(t, r.Create(context.Background(), p))
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectQuery(`SELECT .* FROM projects`).
		WithArgs("p-404", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "user_id", "name", "description", "created_at", "updated_at"}))

	_, err := r.GetByID(context.Background(), "u-1", "p-404")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ScopedToOwner(t *testing.T) {
	r, mock := setupMock(t)

	// a foreign user's update touches zero rows and reports not found
	mock.ExpectExec(`UPDATE projects SET`).
		WithArgs("p-1", "intruder", "x", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Update(context.Background(), &models.Project{ProjectID: "p-1", UserID: "intruder", Name: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("p-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Delete(context.Background(), "u-1", "p-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	r, mock := setupMock(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"project_id", "user_id", "name", "description", "created_at", "updated_at"}).
		AddRow("p-1", "u-1", "a", "", now, now).
		AddRow("p-2", "u-1", "b", "", now, now)

	mock.ExpectQuery(`SELECT .* FROM projects`).
		WithArgs("u-1", 20, 0).
		WillReturnRows(rows)

	got, err := r.List(context.Background(), "u-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-2", got[1].ProjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	r, mock := setupMock(t)

	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnError(errors.New("connection reset"))

	err := r.Create(context.Background(), &models.Project{ProjectID: "p-1", UserID: "u-1", Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
