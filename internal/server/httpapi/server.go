// Package httpapi exposes the clipstream server over a JSON HTTP API:
// authentication, upload authorization issuance, and record CRUD.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mkorotkov/clipstream/internal/logging"
	"github.com/mkorotkov/clipstream/internal/server/models"
	"github.com/mkorotkov/clipstream/internal/server/services"
)

// AuthService is the account surface the API needs. *services.UserService
// satisfies it.
type AuthService interface {
	Register(ctx context.Context, login, password string) (*models.User, error)
	Login(ctx context.Context, login, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// UploadService issues write authorizations. *services.UploadService
// satisfies it.
type UploadService interface {
	CreateUploadGrant(ctx context.Context, userID string, req services.UploadRequest) (*models.UploadGrant, error)
	PlaybackURL(ctx context.Context, userID, key string) (string, error)
}

// RecordService is the record CRUD surface. *services.RecordService
// satisfies it.
type RecordService interface {
	CreateProject(ctx context.Context, userID, name, description string) (*models.Project, error)
	GetProject(ctx context.Context, userID, projectID string) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, userID, projectID string) error
	ListProjects(ctx context.Context, userID string, limit, offset int) ([]*models.Project, error)
	CreateMeeting(ctx context.Context, userID, projectID, title string, heldAt time.Time) (*models.Meeting, error)
	GetMeeting(ctx context.Context, userID, meetingID string) (*models.Meeting, error)
	AttachMeetingVideo(ctx context.Context, userID, meetingID, videoKey string) error
	DeleteMeeting(ctx context.Context, userID, meetingID string) error
	ListMeetings(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Meeting, error)
	CreateInterview(ctx context.Context, userID, projectID, subject string) (*models.Interview, error)
	GetInterview(ctx context.Context, userID, interviewID string) (*models.Interview, error)
	AttachInterviewVideo(ctx context.Context, userID, interviewID, videoKey string) error
	DeleteInterview(ctx context.Context, userID, interviewID string) error
	ListInterviews(ctx context.Context, userID, projectID string, limit, offset int) ([]*models.Interview, error)
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
	jwtSecret  []byte

	users   AuthService
	uploads UploadService
	records RecordService
}

func NewServer(addr string, logger logging.Logger, jwtSecret []byte,
	users AuthService, uploads UploadService, records RecordService) *Server {

	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine:    engine,
		logger:    logger,
		jwtSecret: jwtSecret,
		users:     users,
		uploads:   uploads,
		records:   records,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)

	private := api.Group("")
	private.Use(s.authMiddleware())

	private.POST("/uploads", s.handleCreateUpload)
	private.GET("/uploads/url", s.handlePlaybackURL)

	private.POST("/projects", s.handleCreateProject)
	private.GET("/projects", s.handleListProjects)
	private.GET("/projects/:id", s.handleGetProject)
	private.PUT("/projects/:id", s.handleUpdateProject)
	private.DELETE("/projects/:id", s.handleDeleteProject)

	private.POST("/projects/:id/meetings", s.handleCreateMeeting)
	private.GET("/projects/:id/meetings", s.handleListMeetings)
	private.GET("/meetings/:id", s.handleGetMeeting)
	private.PUT("/meetings/:id/video", s.handleAttachMeetingVideo)
	private.DELETE("/meetings/:id", s.handleDeleteMeeting)

	private.POST("/projects/:id/interviews", s.handleCreateInterview)
	private.GET("/projects/:id/interviews", s.handleListInterviews)
	private.GET("/interviews/:id", s.handleGetInterview)
	private.PUT("/interviews/:id/video", s.handleAttachInterviewVideo)
	private.DELETE("/interviews/:id", s.handleDeleteInterview)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
