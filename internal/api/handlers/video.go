package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"wazp-annotator/internal/helpers"
	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/services/session"
)

type VideoHandler struct{}

func NewVideoHandler() *VideoHandler {
	return &VideoHandler{}
}

type SetFrameRequest struct {
	Frame *int `json:"frame" binding:"required" example:"300"`
}

// frameURL is where the image of a rendered frame can be fetched.
func frameURL(sessionID, video string, frame int) string {
	return fmt.Sprintf("/sessions/%s/videos/%s/image?frame=%d", url.PathEscape(sessionID), url.PathEscape(video), frame)
}

func withFrameURL(sessionID string, view session.View) session.View {
	if view.FramePath != "" {
		view.FrameURL = frameURL(sessionID, view.Video, view.Frame)
	}
	return view
}

// @Summary Select video
// @Description Makes the video active and renders its default frame. The response carries the frame slider.
// @Tags videos
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} session.Selection
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/select [post]
func (h *VideoHandler) SelectVideo(c *gin.Context) {
	s := currentSession(c)
	video := c.Param("video")

	sel, err := s.SelectVideo(c.Request.Context(), video)
	if err != nil {
		respondError(c, err)
		return
	}
	sel.View = withFrameURL(s.ID, sel.View)

	logging.Info(c).Str("video", video).Int("frame", sel.View.Frame).Msg("Video selected")
	c.JSON(http.StatusOK, sel)
}

// @Summary Move frame slider
// @Tags videos
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Param request body SetFrameRequest true "Frame index"
// @Success 200 {object} session.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/frame [put]
func (h *VideoHandler) SetFrame(c *gin.Context) {
	var req SetFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	s := currentSession(c)
	view, err := s.SetFrame(c.Request.Context(), c.Param("video"), *req.Frame)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withFrameURL(s.ID, view))
}

// @Summary Current view
// @Description Current frame of the video with its ROIs
// @Tags videos
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/view [get]
func (h *VideoHandler) GetView(c *gin.Context) {
	s := currentSession(c)
	view, err := s.View(c.Request.Context(), c.Param("video"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withFrameURL(s.ID, view))
}

// @Summary Frame image
// @Description Image of a frame from the frame cache. Defaults to the current frame.
// @Tags videos
// @Produce png
// @Produce jpeg
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Param frame query int false "Frame index"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/image [get]
func (h *VideoHandler) GetFrameImage(c *gin.Context) {
	frame := -1
	if v := c.Query("frame"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "Invalid frame index")
			return
		}
		frame = n
	}

	path, err := currentSession(c).FramePath(c.Request.Context(), c.Param("video"), frame)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		respondError(c, fmt.Errorf("read cached frame: %w", err))
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, helpers.ImageContentType(data), data)
}
