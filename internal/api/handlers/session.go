package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/services/session"
	"wazp-annotator/internal/services/videos"
)

const sessionKey = "session"

type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type CreateSessionRequest struct {
	ProjectConfigPath string `json:"project_config_path" example:"/data/project_config.yaml"`
}

type VideosResponse struct {
	Videos []videos.Option `json:"videos"`
}

type CategoriesResponse struct {
	Categories []session.CategoryColor `json:"categories"`
	Selected   string                  `json:"selected"`
}

type SetCategoryRequest struct {
	Category string `json:"category" binding:"required" example:"feeder"`
}

// RequireSession loads the session named by the session_id path parameter.
func (h *SessionHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("session_id")
		s, err := h.sessions.Get(id)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(logging.SessionIDKey, s.ID)
		c.Set(sessionKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// @Summary Create session
// @Description Start an annotation session for a project. Without a body the default project is used.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Project config"
// @Success 201 {object} session.Summary
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	s, err := h.sessions.Create(req.ProjectConfigPath)
	if err != nil {
		logging.Warn(c).Err(err).Str("project", req.ProjectConfigPath).Msg("Failed to create session")
		badRequest(c, err.Error())
		return
	}

	c.Set(logging.SessionIDKey, s.ID)
	logging.Info(c).Msg("Session started")
	c.JSON(http.StatusCreated, s.Summary())
}

// @Summary Get session
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} session.Summary
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Summary())
}

// @Summary Delete session
// @Description Drop a session and its unsaved ROIs
// @Tags sessions
// @Param session_id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(currentSession(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List videos
// @Description Videos of the session's project
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} VideosResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos [get]
func (h *SessionHandler) ListVideos(c *gin.Context) {
	opts, err := currentSession(c).VideoOptions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VideosResponse{Videos: opts})
}

// @Summary List ROI categories
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} CategoriesResponse
// @Router /sessions/{session_id}/categories [get]
func (h *SessionHandler) ListCategories(c *gin.Context) {
	s := currentSession(c)
	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: s.Categories(),
		Selected:   s.Summary().Category,
	})
}

// @Summary Select ROI category
// @Description Sets the category of the next drawn shape and re-renders the selected video
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body SetCategoryRequest true "Category"
// @Success 200 {object} session.View
// @Failure 400 {object} ErrorResponse
// @Router /sessions/{session_id}/category [put]
func (h *SessionHandler) SetCategory(c *gin.Context) {
	var req SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	s := currentSession(c)
	view, err := s.SetCategory(c.Request.Context(), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withFrameURL(s.ID, view))
}
