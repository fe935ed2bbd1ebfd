package cameras

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shopsentry/dashboard/internal/upstream"
)

// OpState is a camera's in-flight command state. State is tracked per camera
// so a command on one camera never disables another camera's controls; two
// commands for the same camera can never be in flight at once.
type OpState string

const (
	OpIdle     OpState = "idle"
	OpStarting OpState = "starting"
	OpStopping OpState = "stopping"
	OpDeleting OpState = "deleting"
)

// Coordinator serializes mutating commands (start/stop/delete) per camera and
// forces an out-of-cadence status refresh after each command that succeeds.
// All guard checks happen locally against the latest reconciled state; a
// rejected command never reaches the network.
type Coordinator struct {
	shopID      string
	api         API
	registry    *Registry
	isRecording func(cameraName string) bool // latest reconciled truth
	refresh     func()                       // immediate out-of-cadence poll
	logger      *zap.Logger

	mu  sync.Mutex
	ops map[string]OpState // camera name -> in-flight command
}

// NewCoordinator creates a coordinator for shopID. isRecording must report
// the latest reconciled recording state for a camera name; refresh must
// trigger an immediate status poll.
func NewCoordinator(shopID string, api API, registry *Registry, isRecording func(string) bool, refresh func(), logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		shopID:      shopID,
		api:         api,
		registry:    registry,
		isRecording: isRecording,
		refresh:     refresh,
		logger:      logger,
		ops:         make(map[string]OpState),
	}
}

// Start begins recording on the named camera. Allowed only when the camera
// exists, has no command in flight, and the latest reconciled state says it
// is not recording. On upstream failure the camera returns to idle with no
// state side effects; there is no automatic retry.
func (c *Coordinator) Start(ctx context.Context, req upstream.StartRecordingRequest) error {
	name := strings.TrimSpace(req.CameraName)
	if name == "" {
		return ErrNameRequired
	}
	if _, ok := c.registry.ByName(name); !ok {
		return ErrCameraNotFound
	}
	if c.isRecording(name) {
		return ErrAlreadyRecording
	}
	if err := c.begin(name, OpStarting); err != nil {
		return err
	}
	defer c.end(name)

	req.CameraName = name
	if _, err := c.api.StartRecording(ctx, c.shopID, req); err != nil {
		c.logger.Warn("start recording failed",
			zap.String("shop_id", c.shopID), zap.String("camera_name", name), zap.Error(err))
		return err
	}
	c.logger.Info("recording started",
		zap.String("shop_id", c.shopID), zap.String("camera_name", name),
		zap.Int("duration", req.Duration))
	c.refresh()
	return nil
}

// Stop ends recording on the named camera, symmetric with Start: allowed only
// when idle and the reconciled state says the camera is recording.
func (c *Coordinator) Stop(ctx context.Context, cameraName string) error {
	name := strings.TrimSpace(cameraName)
	if name == "" {
		return ErrNameRequired
	}
	if _, ok := c.registry.ByName(name); !ok {
		return ErrCameraNotFound
	}
	if !c.isRecording(name) {
		return ErrNotRecording
	}
	if err := c.begin(name, OpStopping); err != nil {
		return err
	}
	defer c.end(name)

	if _, err := c.api.StopRecording(ctx, c.shopID, name); err != nil {
		c.logger.Warn("stop recording failed",
			zap.String("shop_id", c.shopID), zap.String("camera_name", name), zap.Error(err))
		return err
	}
	c.logger.Info("recording stopped", zap.String("shop_id", c.shopID), zap.String("camera_name", name))
	c.refresh()
	return nil
}

// Delete removes the camera. Refused without a network call while the latest
// reconciled state says the camera is recording or a command for it is in
// flight. Whether the remote service enforces the same rule is unknown, so a
// server-side rejection is still surfaced if another client races us.
func (c *Coordinator) Delete(ctx context.Context, cameraID string) error {
	cam, ok := c.registry.ByID(cameraID)
	if !ok {
		return ErrCameraNotFound
	}
	if c.isRecording(cam.Name) {
		return ErrCameraRecording
	}
	if err := c.begin(cam.Name, OpDeleting); err != nil {
		return err
	}
	defer c.end(cam.Name)

	if err := c.registry.Remove(ctx, cameraID); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// State returns the camera's in-flight command state.
func (c *Coordinator) State(cameraName string) OpState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.ops[cameraName]; ok {
		return s
	}
	return OpIdle
}

// begin claims the camera for op, failing with ErrCameraBusy if another
// command for the same camera has not settled yet.
func (c *Coordinator) begin(cameraName string, op OpState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.ops[cameraName]; ok && s != OpIdle {
		return ErrCameraBusy
	}
	c.ops[cameraName] = op
	return nil
}

// end releases the camera when its command settles, success or failure.
func (c *Coordinator) end(cameraName string) {
	c.mu.Lock()
	delete(c.ops, cameraName)
	c.mu.Unlock()
}
