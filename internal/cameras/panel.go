package cameras

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsentry/dashboard/internal/models"
	"github.com/shopsentry/dashboard/internal/upstream"
)

// Options tunes a panel.
type Options struct {
	PollInterval time.Duration
}

// Panel is the live camera panel for one shop view: the camera registry, the
// status poller and the operation coordinator, reconciled into one snapshot.
// A panel is created when the shop view becomes active and closed when it is
// torn down or the operator switches shops; nothing survives a close.
type Panel struct {
	ShopID string

	// generation distinguishes successive sessions for the same shop in logs.
	generation uuid.UUID

	api         API
	registry    *Registry
	coordinator *Coordinator
	poller      *Poller
	logger      *zap.Logger

	mu       sync.RWMutex
	statuses []models.RecordingStatus
	closed   bool
}

// OpenPanel loads the shop's cameras and current recording statuses
// synchronously, so the first render has real data, then starts the
// background poller. The caller must Close the panel when the view goes away.
func OpenPanel(ctx context.Context, shopID string, api API, opts Options, logger *zap.Logger) (*Panel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Panel{
		ShopID:     shopID,
		generation: uuid.New(),
		api:        api,
		logger:     logger,
	}
	p.registry = NewRegistry(shopID, api, logger)
	p.coordinator = NewCoordinator(shopID, api, p.registry, p.cameraRecording, p.requestRefresh, logger)
	p.poller = NewPoller(shopID, api, opts.PollInterval, p.applyStatuses, logger)

	if _, err := p.registry.Load(ctx); err != nil {
		return nil, err
	}
	statuses, err := api.RecordingStatus(ctx, shopID)
	if err != nil {
		// Same fail-open policy as the poller: the first render shows no
		// active recordings and the next tick corrects it.
		logger.Warn("initial status fetch failed", zap.String("shop_id", shopID), zap.Error(err))
		statuses = nil
	}
	p.statuses = statuses
	p.poller.Start()

	logger.Info("camera panel opened",
		zap.String("shop_id", shopID),
		zap.String("generation", p.generation.String()),
		zap.Int("cameras", len(p.registry.Cameras())),
	)
	return p, nil
}

// Close stops the poller. Poll results that settle after Close are dropped
// instead of mutating a dead panel, and further commands fail with
// ErrPanelClosed.
func (p *Panel) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.poller.Stop()
	p.logger.Info("camera panel closed",
		zap.String("shop_id", p.ShopID),
		zap.String("generation", p.generation.String()),
	)
}

// CameraView is one row of the panel snapshot.
type CameraView struct {
	models.CameraWithStatus
	OpState OpState `json:"op_state"`
	Elapsed string  `json:"elapsed,omitempty"`
}

// Snapshot reconciles the current camera list with the latest polled
// statuses. Elapsed strings are computed against now, so displayed time only
// advances when a new snapshot is taken.
func (p *Panel) Snapshot(now time.Time) []CameraView {
	cameras := p.registry.Cameras()
	p.mu.RLock()
	statuses := p.statuses
	p.mu.RUnlock()

	merged := Reconcile(cameras, statuses)
	views := make([]CameraView, 0, len(merged))
	for _, row := range merged {
		view := CameraView{CameraWithStatus: row, OpState: p.coordinator.State(row.Name)}
		if row.IsRecording && row.RecordingStartedAt != nil {
			view.Elapsed = FormatElapsed(*row.RecordingStartedAt, now)
		}
		views = append(views, view)
	}
	return views
}

// AddCamera validates and creates a camera, then requests a refresh so the
// next snapshot carries the newest status set.
func (p *Panel) AddCamera(ctx context.Context, name string) (*models.Camera, error) {
	if p.isClosed() {
		return nil, ErrPanelClosed
	}
	camera, err := p.registry.Add(ctx, name)
	if err != nil {
		return nil, err
	}
	p.requestRefresh()
	return camera, nil
}

// DeleteCamera removes a camera through the coordinator's guards.
func (p *Panel) DeleteCamera(ctx context.Context, cameraID string) error {
	if p.isClosed() {
		return ErrPanelClosed
	}
	return p.coordinator.Delete(ctx, cameraID)
}

// StartRecording begins recording through the coordinator's guards.
func (p *Panel) StartRecording(ctx context.Context, req upstream.StartRecordingRequest) error {
	if p.isClosed() {
		return ErrPanelClosed
	}
	return p.coordinator.Start(ctx, req)
}

// StopRecording ends recording through the coordinator's guards.
func (p *Panel) StopRecording(ctx context.Context, cameraName string) error {
	if p.isClosed() {
		return ErrPanelClosed
	}
	return p.coordinator.Stop(ctx, cameraName)
}

// OpState returns the in-flight command state for a camera name.
func (p *Panel) OpState(cameraName string) OpState {
	return p.coordinator.State(cameraName)
}

// applyStatuses is the poller's continuation. It is guarded so a fetch that
// resolves after teardown cannot write into a closed panel.
func (p *Panel) applyStatuses(statuses []models.RecordingStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.statuses = statuses
}

// cameraRecording reports the latest reconciled recording state for a name.
func (p *Panel) cameraRecording(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.statuses {
		if p.statuses[i].CameraName == name {
			return true
		}
	}
	return false
}

func (p *Panel) requestRefresh() { p.poller.Refresh() }

func (p *Panel) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
