package cameras

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shopsentry/dashboard/internal/models"
)

// Registry owns the authoritative local camera list for one shop view. The
// list is replaced wholesale on load and otherwise only changes when the
// remote service acknowledges an add or remove.
type Registry struct {
	shopID string
	api    API
	logger *zap.Logger

	mu      sync.RWMutex
	cameras []models.Camera
	pending map[string]struct{} // names claimed by adds that have not settled
}

// NewRegistry creates a registry for shopID backed by api.
func NewRegistry(shopID string, api API, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{shopID: shopID, api: api, logger: logger, pending: make(map[string]struct{})}
}

// Load fetches and replaces the camera list. On failure the list is cleared
// rather than left stale, and the error is returned to the caller.
func (r *Registry) Load(ctx context.Context) ([]models.Camera, error) {
	cameras, err := r.api.ListCameras(ctx, r.shopID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.cameras = nil
		return nil, fmt.Errorf("load cameras: %w", err)
	}
	r.cameras = cameras
	return r.copyLocked(), nil
}

// Add creates a camera with the given name. The name must be non-empty after
// trimming and unique within the shop; both checks are local and happen
// before any network call. The name stays claimed while the create is in
// flight, so a concurrent add of the same name is rejected rather than
// racing past the duplicate check. On server error the list is left
// unchanged and the name becomes available again.
func (r *Registry) Add(ctx context.Context, name string) (*models.Camera, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := r.claimName(name); err != nil {
		return nil, err
	}
	defer r.releaseName(name)
	camera, err := r.api.CreateCamera(ctx, r.shopID, name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cameras = append(r.cameras, *camera)
	r.mu.Unlock()
	r.logger.Info("camera added",
		zap.String("shop_id", r.shopID),
		zap.String("camera_id", camera.ID),
		zap.String("camera_name", camera.Name),
	)
	return camera, nil
}

// Remove deletes the camera after the upstream ack. The recording and
// in-flight-command guards live in the coordinator, not here.
func (r *Registry) Remove(ctx context.Context, cameraID string) error {
	if _, ok := r.ByID(cameraID); !ok {
		return ErrCameraNotFound
	}
	if _, err := r.api.DeleteCamera(ctx, r.shopID, cameraID); err != nil {
		return err
	}
	r.mu.Lock()
	for i := range r.cameras {
		if r.cameras[i].ID == cameraID {
			r.cameras = append(r.cameras[:i], r.cameras[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	r.logger.Info("camera removed", zap.String("shop_id", r.shopID), zap.String("camera_id", cameraID))
	return nil
}

// Cameras returns a copy of the current list.
func (r *Registry) Cameras() []models.Camera {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyLocked()
}

// ByName looks a camera up by its display name.
func (r *Registry) ByName(name string) (models.Camera, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cam := range r.cameras {
		if cam.Name == name {
			return cam, true
		}
	}
	return models.Camera{}, false
}

// ByID looks a camera up by its server-issued id.
func (r *Registry) ByID(id string) (models.Camera, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cam := range r.cameras {
		if cam.ID == id {
			return cam, true
		}
	}
	return models.Camera{}, false
}

// claimName atomically checks name against both the camera list and other
// in-flight adds, and reserves it until releaseName.
func (r *Registry) claimName(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cam := range r.cameras {
		if cam.Name == name {
			return ErrDuplicateName
		}
	}
	if _, ok := r.pending[name]; ok {
		return ErrDuplicateName
	}
	r.pending[name] = struct{}{}
	return nil
}

func (r *Registry) releaseName(name string) {
	r.mu.Lock()
	delete(r.pending, name)
	r.mu.Unlock()
}

func (r *Registry) copyLocked() []models.Camera {
	out := make([]models.Camera, len(r.cameras))
	copy(out, r.cameras)
	return out
}
