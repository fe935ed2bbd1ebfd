package cameras

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopsentry/dashboard/internal/models"
	"github.com/shopsentry/dashboard/internal/upstream"
)

// fakeAPI is an in-memory stand-in for the remote recording service.
type fakeAPI struct {
	mu       sync.Mutex
	cameras  []models.Camera
	statuses []models.RecordingStatus
	nextID   int

	listErr   error
	createErr error
	deleteErr error
	startErr  error
	stopErr   error
	statusErr error

	calls map[string]int

	// When set, the matching call blocks until the channel is closed, to
	// hold a command in flight from a test.
	startBlock  chan struct{}
	createBlock chan struct{}
}

func newFakeAPI(cameras []models.Camera, statuses []models.RecordingStatus) *fakeAPI {
	return &fakeAPI{cameras: cameras, statuses: statuses, calls: make(map[string]int)}
}

func (f *fakeAPI) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) setStatuses(statuses []models.RecordingStatus) {
	f.mu.Lock()
	f.statuses = statuses
	f.mu.Unlock()
}

func (f *fakeAPI) ListCameras(ctx context.Context, shopID string) ([]models.Camera, error) {
	f.record("list")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Camera, len(f.cameras))
	copy(out, f.cameras)
	return out, nil
}

func (f *fakeAPI) CreateCamera(ctx context.Context, shopID, name string) (*models.Camera, error) {
	f.record("create")
	f.mu.Lock()
	block := f.createBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	cam := models.Camera{ID: fmt.Sprintf("cam-%d", f.nextID), ShopID: shopID, Name: name}
	f.cameras = append(f.cameras, cam)
	return &cam, nil
}

func (f *fakeAPI) DeleteCamera(ctx context.Context, shopID, cameraID string) (string, error) {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	for i := range f.cameras {
		if f.cameras[i].ID == cameraID {
			f.cameras = append(f.cameras[:i], f.cameras[i+1:]...)
			break
		}
	}
	return cameraID, nil
}

func (f *fakeAPI) StartRecording(ctx context.Context, shopID string, req upstream.StartRecordingRequest) (string, error) {
	f.record("start")
	f.mu.Lock()
	block := f.startBlock
	err := f.startErr
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return "", err
	}
	return "OK", nil
}

func (f *fakeAPI) StopRecording(ctx context.Context, shopID, cameraName string) (string, error) {
	f.record("stop")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopErr != nil {
		return "", f.stopErr
	}
	return "OK", nil
}

func (f *fakeAPI) RecordingStatus(ctx context.Context, shopID string) ([]models.RecordingStatus, error) {
	f.record("status")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	out := make([]models.RecordingStatus, len(f.statuses))
	copy(out, f.statuses)
	return out, nil
}
