package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkorotkov/clipstream/internal/server/models"
	"github.com/mkorotkov/clipstream/internal/server/repositories/repomanager"
)

// DefaultPageSize bounds paginated list queries.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RecordService provides plain CRUD over projects, meetings, and interviews.
// It carries no upload logic; the upload pipeline treats these entities as
// opaque attachment targets for completed storage keys.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func (s *RecordService) CreateProject(ctx context.Context, userID, name, description string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	p := &models.Project{
		ProjectID:   uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}

	if err := s.repomanager.Projects(s.db).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return p, nil
}

func (s *RecordService) GetProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	return s.repomanager.Projects(s.db).GetByID(ctx, userID, projectID)
}

func (s *RecordService) UpdateProject(ctx context.Context, p *models.Project) error {
	return s.repomanager.Projects(s.db).Update(ctx, p)
}

func (s *RecordService) DeleteProject(ctx context.Context, userID, projectID string) error {
	return s.repomanager.Projects(s.db).Delete(ctx, userID, projectID)
}

func (s *RecordService) ListProjects(ctx context.Context, userID string, limit, offset int) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx, userID, clampPageSize(limit), offset)
}

func (s *RecordService) CreateMeeting(ctx context.Context, userID, projectID, title string, heldAt time.Time) (*models.Meeting, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	m := &models.Meeting{
		MeetingID: uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Title:     title,
		HeldAt:    heldAt,
	}

	if err := s.repomanager.Meetings(s.db).Create(ctx, m); err != nil {
		return nil, fmt.Errorf("error creating meeting: %w", err)
	}
	return m, nil
}

func (s *RecordService) GetMeeting(ctx context.Context, userID, meetingID string) (*models.Meeting, error) {
	return s.repomanager.Meetings(s.db).GetByID(ctx, userID, meetingID)
}

// AttachMeetingVideo records the storage key a finished upload was assigned.
func (s *RecordService) AttachMeetingVideo(ctx context.Context, userID, meetingID, videoKey string) error {
	return s.repomanager.Meetings(s.db).AttachVideo(ctx, userID, meetingID, videoKey)
}

func (s *RecordService) DeleteMeeting(ctx context.Context, userID, meetingID string) error {
	return s.repomanager.Meetings(s.db).Delete(ctx, userID, meetingID)
}

func (s *RecordService) ListMeetings(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Meeting, error) {
	return s.repomanager.Meetings(s.db).ListByProject(ctx, userID, projectID, clampPageSize(limit), offset)
}

func (s *RecordService) CreateInterview(ctx context.Context, userID, projectID, subject string) (*models.Interview, error) {
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	iv := &models.Interview{
		InterviewID: uuid.NewString(),
		ProjectID:   projectID,
		UserID:      userID,
		Subject:     subject,
	}

	if err := s.repomanager.Interviews(s.db).Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("error creating interview: %w", err)
	}
	return iv, nil
}

func (s *RecordService) GetInterview(ctx context.Context, userID, interviewID string) (*models.Interview, error) {
	return s.repomanager.Interviews(s.db).GetByID(ctx, userID, interviewID)
}

func (s *RecordService) AttachInterviewVideo(ctx context.Context, userID, interviewID, videoKey string) error {
	return s.repomanager.Interviews(s.db).AttachVideo(ctx, userID, interviewID, videoKey)
}

func (s *RecordService) DeleteInterview(ctx context.Context, userID, interviewID string) error {
	return s.repomanager.Interviews(s.db).Delete(ctx, userID, interviewID)
}

func (s *RecordService) ListInterviews(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Interview, error) {
	return s.repomanager.Interviews(s.db).ListByProject(ctx, userID, projectID, clampPageSize(limit), offset)
}
