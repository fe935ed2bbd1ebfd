// Package cameras implements the per-shop camera panel: the camera registry,
// the recording-status poller, reconciliation of polled truth with the local
// list, and the operation coordinator that serializes mutating commands.
package cameras

import (
	"context"

	"github.com/shopsentry/dashboard/internal/models"
	"github.com/shopsentry/dashboard/internal/upstream"
)

// API is the slice of the remote recording service the camera panel uses.
// *upstream.Client satisfies it; tests substitute a fake.
type API interface {
	ListCameras(ctx context.Context, shopID string) ([]models.Camera, error)
	CreateCamera(ctx context.Context, shopID, name string) (*models.Camera, error)
	DeleteCamera(ctx context.Context, shopID, cameraID string) (string, error)
	StartRecording(ctx context.Context, shopID string, req upstream.StartRecordingRequest) (string, error)
	StopRecording(ctx context.Context, shopID, cameraName string) (string, error)
	RecordingStatus(ctx context.Context, shopID string) ([]models.RecordingStatus, error)
}
