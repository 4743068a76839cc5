package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkorotkov/clipstream/internal/server/models"
	"github.com/mkorotkov/clipstream/internal/server/services"
)

// ---- auth ----

type credentialsRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		s.logger.Error(c.Request.Context(), "registration failed", "login", req.Login, "err", err.Error())
		writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "registered", "login", user.Login)
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "login": user.Login})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	pair, err := s.users.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	pair, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// ---- uploads ----

type createUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Category    string `json:"category"`
}

type createUploadResponse struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"storageKey"`
	ExpiresIn  int    `json:"expiresIn"`
}

func (s *Server) handleCreateUpload(c *gin.Context) {
	var req createUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	grant, err := s.uploads.CreateUploadGrant(c.Request.Context(), callerID(c), services.UploadRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Category:    req.Category,
	})
	if err != nil {
		s.logger.Warn(c.Request.Context(), "upload grant rejected", "fileName", req.FileName, "err", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, createUploadResponse{
		UploadURL:  grant.UploadURL,
		StorageKey: grant.StorageKey,
		ExpiresIn:  grant.ExpiresIn,
	})
}

func (s *Server) handlePlaybackURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, apiError{Message: "key is required", Type: "MissingField"})
		return
	}

	url, err := s.uploads.PlaybackURL(c.Request.Context(), callerID(c), key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ---- records ----

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	p, err := s.records.CreateProject(c.Request.Context(), callerID(c), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleGetProject(c *gin.Context) {
	p, err := s.records.GetProject(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	p := &models.Project{
		ProjectID:   c.Param("id"),
		UserID:      callerID(c),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.records.UpdateProject(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.records.DeleteProject(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListProjects(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := s.records.ListProjects(c.Request.Context(), callerID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type meetingRequest struct {
	Title  string    `json:"title" binding:"required"`
	HeldAt time.Time `json:"heldAt"`
}

func (s *Server) handleCreateMeeting(c *gin.Context) {
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	m, err := s.records.CreateMeeting(c.Request.Context(), callerID(c), c.Param("id"), req.Title, req.HeldAt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (s *Server) handleGetMeeting(c *gin.Context) {
	m, err := s.records.GetMeeting(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type attachVideoRequest struct {
	VideoKey string `json:"videoKey" binding:"required"`
}

func (s *Server) handleAttachMeetingVideo(c *gin.Context) {
	var req attachVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	if err := s.records.AttachMeetingVideo(c.Request.Context(), callerID(c), c.Param("id"), req.VideoKey); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteMeeting(c *gin.Context) {
	if err := s.records.DeleteMeeting(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListMeetings(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := s.records.ListMeetings(c.Request.Context(), callerID(c), c.Param("id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type interviewRequest struct {
	Subject string `json:"subject" binding:"required"`
}

func (s *Server) handleCreateInterview(c *gin.Context) {
	var req interviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	iv, err := s.records.CreateInterview(c.Request.Context(), callerID(c), c.Param("id"), req.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

func (s *Server) handleGetInterview(c *gin.Context) {
	iv, err := s.records.GetInterview(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (s *Server) handleAttachInterviewVideo(c *gin.Context) {
	var req attachVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Message: err.Error(), Type: "MissingField"})
		return
	}

	if err := s.records.AttachInterviewVideo(c.Request.Context(), callerID(c), c.Param("id"), req.VideoKey); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteInterview(c *gin.Context) {
	if err := s.records.DeleteInterview(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListInterviews(c *gin.Context) {
	limit, offset := pageParams(c)
	items, err := s.records.ListInterviews(c.Request.Context(), callerID(c), c.Param("id"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
