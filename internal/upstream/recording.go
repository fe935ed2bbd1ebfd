package upstream

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/shopsentry/dashboard/internal/models"
)

// StartRecordingRequest is the body for POST /shops/{id}/recording/start.
type StartRecordingRequest struct {
	CameraName         string  `json:"camera_name"`
	Duration           int     `json:"duration"`
	DetectionThreshold float64 `json:"detection_threshold"`
	AnalysisIterations int     `json:"analysis_iterations"`
}

type stopRecordingRequest struct {
	CameraName string `json:"camera_name"`
}

// StartRecording starts a recording session on the named camera and returns
// the service's confirmation string.
func (c *Client) StartRecording(ctx context.Context, shopID string, req StartRecordingRequest) (string, error) {
	var confirmation string
	if err := c.do(ctx, resty.MethodPost, shopPath(shopID, "/recording/start"), req, &confirmation); err != nil {
		return "", fmt.Errorf("start recording: %w", err)
	}
	return confirmation, nil
}

// StopRecording stops the recording session on the named camera.
func (c *Client) StopRecording(ctx context.Context, shopID, cameraName string) (string, error) {
	body := stopRecordingRequest{CameraName: cameraName}
	var confirmation string
	if err := c.do(ctx, resty.MethodPost, shopPath(shopID, "/recording/stop"), body, &confirmation); err != nil {
		return "", fmt.Errorf("stop recording: %w", err)
	}
	return confirmation, nil
}

// RecordingStatus returns the set of currently-active recordings for the
// shop. The set is authoritative: a camera absent from it is not recording.
func (c *Client) RecordingStatus(ctx context.Context, shopID string) ([]models.RecordingStatus, error) {
	var statuses []models.RecordingStatus
	if err := c.do(ctx, resty.MethodGet, shopPath(shopID, "/recording/status"), nil, &statuses); err != nil {
		return nil, fmt.Errorf("recording status: %w", err)
	}
	return statuses, nil
}
