package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/models"
	"wazp-annotator/internal/roi"
	"wazp-annotator/internal/services/session"
)

type ROIHandler struct{}

func NewROIHandler() *ROIHandler {
	return &ROIHandler{}
}

type DeleteROIsRequest struct {
	Names []string `json:"names" binding:"required" example:"feeder"`
}

// LoadResponse is returned after loading ROIs from the metadata file.
type LoadResponse struct {
	session.ShapeUpdate
	session.FileStatus
}

// @Summary Drawing surface change
// @Description Applies a change of the drawing surface. The body is either a tagged event
// @Description ({"kind": "shapes_replaced" | "shape_attribute_changed" | "viewport_changed", ...})
// @Description or a raw relayout payload ({"shapes": [...]}, {"shapes[0].path": "..."}, ...).
// @Tags rois
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Param event body models.SurfaceEvent true "Surface event"
// @Success 200 {object} session.ShapeUpdate
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/shapes [post]
func (h *ROIHandler) UpdateShapes(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Failed to read request body")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	s := currentSession(c)
	video := c.Param("video")

	var upd session.ShapeUpdate
	if _, tagged := payload["kind"]; tagged {
		var event models.SurfaceEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			badRequest(c, "Invalid surface event: "+err.Error())
			return
		}
		if !event.Kind.IsValid() {
			respondError(c, fmt.Errorf("%w: unknown kind %q", roi.ErrInvalidEvent, event.Kind))
			return
		}
		upd, err = s.HandleSurfaceEvent(c.Request.Context(), video, event)
	} else {
		upd, err = s.HandleRelayout(c.Request.Context(), video, payload)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if upd.Changed {
		logging.Debug(c).Str("video", video).Int("rois", len(upd.Rows)).Msg("Shapes updated")
	}
	c.JSON(http.StatusOK, upd)
}

// @Summary ROI table
// @Tags rois
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} session.Table
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/rois [get]
func (h *ROIHandler) GetTable(c *gin.Context) {
	table, err := currentSession(c).Table(c.Param("video"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// @Summary Load ROIs from file
// @Description Replaces the in-memory ROIs of the video with those of its metadata file
// @Tags rois
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} LoadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/rois/load [post]
func (h *ROIHandler) LoadROIs(c *gin.Context) {
	video := c.Param("video")
	upd, st, err := currentSession(c).LoadROIs(video)
	if err != nil {
		respondError(c, err)
		return
	}

	logging.Info(c).Str("video", video).Int("rois", len(upd.Rows)).Msg("ROIs loaded from file")
	c.JSON(http.StatusOK, LoadResponse{ShapeUpdate: upd, FileStatus: st})
}

// @Summary Save ROIs to file
// @Description Writes the in-memory ROIs of the video to its metadata file. Does nothing while saving is disabled.
// @Tags rois
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} session.FileStatus
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/rois/save [post]
func (h *ROIHandler) SaveROIs(c *gin.Context) {
	video := c.Param("video")
	st, err := currentSession(c).SaveROIs(video)
	if err != nil {
		respondError(c, err)
		return
	}

	logging.Info(c).
		Str("video", video).
		Str("status", string(st.Status.Kind)).
		Bool("save_disabled", st.Buttons.SaveDisabled).
		Msg("Save requested")
	c.JSON(http.StatusOK, st)
}

// @Summary Delete ROIs by category
// @Tags rois
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Param request body DeleteROIsRequest true "Categories to delete"
// @Success 200 {object} session.ShapeUpdate
// @Failure 400 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/rois/delete [post]
func (h *ROIHandler) DeleteROIs(c *gin.Context) {
	var req DeleteROIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	upd, err := currentSession(c).DeleteCategories(c.Param("video"), req.Names)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upd)
}

// @Summary ROI file status
// @Description Compares the in-memory ROIs with the metadata file and reports which file actions are enabled
// @Tags rois
// @Produce json
// @Param session_id path string true "Session ID"
// @Param video path string true "Video file name"
// @Success 200 {object} session.FileStatus
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/videos/{video}/status [get]
func (h *ROIHandler) GetStatus(c *gin.Context) {
	st, err := currentSession(c).Status(c.Param("video"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
