package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/clipstream/internal/dbx"
	"github.com/mkorotkov/clipstream/internal/server/models"
	"github.com/mkorotkov/clipstream/internal/server/repositories/interviews"
	"github.com/mkorotkov/clipstream/internal/server/repositories/meetings"
	"github.com/mkorotkov/clipstream/internal/server/repositories/projects"
	"github.com/mkorotkov/clipstream/internal/server/repositories/repomanager"
)

type fakeProjectsRepo struct {
	projects.Repository
	created *models.Project
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) error {
	f.created = p
	return nil
}

type fakeMeetingsRepo struct {
	meetings.Repository
	attachedID  string
	attachedKey string
}

func (f *fakeMeetingsRepo) AttachVideo(ctx context.Context, userID, meetingID, videoKey string) error {
	f.attachedID = meetingID
	f.attachedKey = videoKey
	return nil
}

type fakeRecordsManager struct {
	repomanager.RepositoryManager
	projects *fakeProjectsRepo
	meetings *fakeMeetingsRepo
}

func (f *fakeRecordsManager) Projects(db dbx.DBTX) projects.Repository { return f.projects }

func (f *fakeRecordsManager) Meetings(db dbx.DBTX) meetings.Repository { return f.meetings }

func (f *fakeRecordsManager) Interviews(db dbx.DBTX) interviews.Repository { return nil }

func newRecordsService() (*RecordService, *fakeRecordsManager) {
	m := &fakeRecordsManager{projects: &fakeProjectsRepo{}, meetings: &fakeMeetingsRepo{}}
	return NewRecordService(nil, m), m
}

func TestCreateProject_AssignsID(t *testing.T) {
	s, m := newRecordsService()

	p, err := s.CreateProject(context.Background(), "u-1", "study", "desc")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ProjectID)
	assert.Equal(t, "u-1", p.UserID)
	assert.Same(t, p, m.projects.created)
}

func TestCreateProject_RequiresName(t *testing.T) {
	s, _ := newRecordsService()

	_, err := s.CreateProject(context.Background(), "u-1", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestCreateMeeting_RequiresTitle(t *testing.T) {
	s, _ := newRecordsService()

	_, err := s.CreateMeeting(context.Background(), "u-1", "p-1", "", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestAttachMeetingVideo(t *testing.T) {
	s, m := newRecordsService()

	key := "uploads/u-1/2026-08-30/meeting/abc.mp4"
	require.NoError(t, s.AttachMeetingVideo(context.Background(), "u-1", "m-1", key))

	assert.Equal(t, "m-1", m.meetings.attachedID)
	assert.Equal(t, key, m.meetings.attachedKey)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, clampPageSize(0))
	assert.Equal(t, DefaultPageSize, clampPageSize(-5))
	assert.Equal(t, 42, clampPageSize(42))
	assert.Equal(t, MaxPageSize, clampPageSize(1000))
}
