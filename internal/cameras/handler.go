package cameras

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsentry/dashboard/config"
	"github.com/shopsentry/dashboard/internal/upstream"
	"github.com/shopsentry/dashboard/pkg/response"
)

// Handler exposes the camera panel over HTTP for the dashboard UI.
type Handler struct {
	panels   *Manager
	defaults config.RecordingConfig
	logger   *zap.Logger
}

// NewHandler creates a camera panel handler. defaults fill in start-recording
// parameters the request omits.
func NewHandler(panels *Manager, defaults config.RecordingConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{panels: panels, defaults: defaults, logger: logger}
}

// OpenPanel handles POST /shops/:id/panel/open. Seeds the camera list and the
// status poller for the shop view and returns the initial snapshot.
func (h *Handler) OpenPanel(c *gin.Context) {
	shopID := c.Param("id")
	panel, err := h.panels.Open(c.Request.Context(), shopID)
	if err != nil {
		h.logger.Error("open panel failed", zap.String("shop_id", shopID), zap.Error(err))
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"shop_id": shopID, "cameras": panel.Snapshot(time.Now())})
}

// ClosePanel handles POST /shops/:id/panel/close. Tears the shop view down
// and cancels its poller.
func (h *Handler) ClosePanel(c *gin.Context) {
	h.panels.Close(c.Param("id"))
	response.NoContent(c)
}

// ListCameras handles GET /shops/:id/cameras. Returns the reconciled snapshot
// for an open panel.
func (h *Handler) ListCameras(c *gin.Context) {
	panel, ok := h.panels.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "no open camera panel for this shop")
		return
	}
	response.OK(c, panel.Snapshot(time.Now()))
}

type addCameraRequest struct {
	CameraName string `json:"camera_name"`
}

// AddCamera handles POST /shops/:id/cameras.
func (h *Handler) AddCamera(c *gin.Context) {
	panel, ok := h.panels.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "no open camera panel for this shop")
		return
	}
	var req addCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	camera, err := panel.AddCamera(c.Request.Context(), req.CameraName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, camera)
}

// DeleteCamera handles DELETE /shops/:id/cameras/:cameraId.
func (h *Handler) DeleteCamera(c *gin.Context) {
	panel, ok := h.panels.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "no open camera panel for this shop")
		return
	}
	cameraID := c.Param("cameraId")
	if err := panel.DeleteCamera(c.Request.Context(), cameraID); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"camera_id": cameraID})
}

type startRecordingRequest struct {
	CameraName         string   `json:"camera_name"`
	Duration           *int     `json:"duration"`
	DetectionThreshold *float64 `json:"detection_threshold"`
	AnalysisIterations *int     `json:"analysis_iterations"`
}

// StartRecording handles POST /shops/:id/recording/start. Omitted parameters
// fall back to the configured defaults.
func (h *Handler) StartRecording(c *gin.Context) {
	panel, ok := h.panels.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "no open camera panel for this shop")
		return
	}
	var req startRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	start := upstream.StartRecordingRequest{
		CameraName:         req.CameraName,
		Duration:           h.defaults.DurationSec,
		DetectionThreshold: h.defaults.DetectionThreshold,
		AnalysisIterations: h.defaults.AnalysisIterations,
	}
	if req.Duration != nil {
		start.Duration = *req.Duration
	}
	if req.DetectionThreshold != nil {
		start.DetectionThreshold = *req.DetectionThreshold
	}
	if req.AnalysisIterations != nil {
		start.AnalysisIterations = *req.AnalysisIterations
	}
	if err := panel.StartRecording(c.Request.Context(), start); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"camera_name": start.CameraName, "recording": true})
}

type stopRecordingRequest struct {
	CameraName string `json:"camera_name"`
}

// StopRecording handles POST /shops/:id/recording/stop.
func (h *Handler) StopRecording(c *gin.Context) {
	panel, ok := h.panels.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "no open camera panel for this shop")
		return
	}
	var req stopRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := panel.StopRecording(c.Request.Context(), req.CameraName); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"camera_name": req.CameraName, "recording": false})
}

// writeError maps panel errors onto HTTP statuses: local validation to 400,
// guard violations to 409, missing camera/panel to 404, upstream failures to
// 502 with the service's own message.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNameRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrCameraBusy),
		errors.Is(err, ErrAlreadyRecording),
		errors.Is(err, ErrNotRecording),
		errors.Is(err, ErrCameraRecording):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrCameraNotFound), errors.Is(err, ErrPanelClosed):
		response.NotFound(c, err.Error())
	default:
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			response.BadGateway(c, apiErr.Message)
			return
		}
		response.BadGateway(c, err.Error())
	}
}
