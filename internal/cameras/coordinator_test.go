package cameras

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopsentry/dashboard/internal/models"
	"github.com/shopsentry/dashboard/internal/upstream"
)

func testCoordinator(t *testing.T, api *fakeAPI, recording map[string]bool) (*Coordinator, *int) {
	t.Helper()
	registry := NewRegistry("s1", api, nil)
	if _, err := registry.Load(context.Background()); err != nil {
		t.Fatalf("load registry: %v", err)
	}
	refreshes := 0
	isRecording := func(name string) bool { return recording[name] }
	coord := NewCoordinator("s1", api, registry, isRecording, func() { refreshes++ }, nil)
	return coord, &refreshes
}

func startReq(name string) upstream.StartRecordingRequest {
	return upstream.StartRecordingRequest{CameraName: name, Duration: 30, DetectionThreshold: 0.8, AnalysisIterations: 1}
}

func TestCoordinatorStart(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)
	coord, refreshes := testCoordinator(t, api, map[string]bool{})

	if err := coord.Start(context.Background(), startReq("Cam1")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if api.callCount("start") != 1 {
		t.Errorf("start calls = %d, want 1", api.callCount("start"))
	}
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want 1 (out-of-cadence poll after command)", *refreshes)
	}
	if got := coord.State("Cam1"); got != OpIdle {
		t.Errorf("state after settle = %q, want idle", got)
	}
}

func TestCoordinatorStartGuards(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)

	tests := []struct {
		name      string
		recording map[string]bool
		camera    string
		wantErr   error
	}{
		{"already recording", map[string]bool{"Cam1": true}, "Cam1", ErrAlreadyRecording},
		{"unknown camera", nil, "Ghost", ErrCameraNotFound},
		{"empty name", nil, "   ", ErrNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, _ := testCoordinator(t, api, tt.recording)
			before := api.callCount("start")
			err := coord.Start(context.Background(), startReq(tt.camera))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Start = %v, want %v", err, tt.wantErr)
			}
			if api.callCount("start") != before {
				t.Error("guard violation reached the network")
			}
		})
	}
}

func TestCoordinatorStopGuards(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)

	coord, _ := testCoordinator(t, api, map[string]bool{})
	if err := coord.Stop(context.Background(), "Cam1"); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("Stop on idle camera = %v, want ErrNotRecording", err)
	}
	if api.callCount("stop") != 0 {
		t.Error("rejected stop reached the network")
	}

	coord, refreshes := testCoordinator(t, api, map[string]bool{"Cam1": true})
	if err := coord.Stop(context.Background(), "Cam1"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if api.callCount("stop") != 1 || *refreshes != 1 {
		t.Errorf("stop calls = %d, refreshes = %d; want 1 and 1", api.callCount("stop"), *refreshes)
	}
}

// Two commands for the same camera can never be in flight at once; a held
// start blocks a second command for that camera but not for another one.
func TestCoordinatorPerCameraMutualExclusion(t *testing.T) {
	api := newFakeAPI([]models.Camera{
		{ID: "c1", ShopID: "s1", Name: "Cam1"},
		{ID: "c2", ShopID: "s1", Name: "Cam2"},
	}, nil)
	api.startBlock = make(chan struct{})
	coord, _ := testCoordinator(t, api, map[string]bool{})

	started := make(chan error, 1)
	go func() { started <- coord.Start(context.Background(), startReq("Cam1")) }()

	// Wait for the first command to claim Cam1.
	deadline := time.Now().Add(time.Second)
	for coord.State("Cam1") != OpStarting {
		if time.Now().After(deadline) {
			t.Fatal("first start never claimed Cam1")
		}
		time.Sleep(time.Millisecond)
	}

	if err := coord.Start(context.Background(), startReq("Cam1")); !errors.Is(err, ErrCameraBusy) {
		t.Errorf("second command on busy camera = %v, want ErrCameraBusy", err)
	}
	if got := coord.State("Cam1"); got != OpStarting {
		t.Errorf("busy rejection changed state to %q", got)
	}
	if err := coord.Start(context.Background(), startReq("Cam2")); err != nil {
		t.Errorf("command on unrelated camera blocked: %v", err)
	}

	close(api.startBlock)
	if err := <-started; err != nil {
		t.Fatalf("held start failed: %v", err)
	}
	if got := coord.State("Cam1"); got != OpIdle {
		t.Errorf("state after settle = %q, want idle", got)
	}
}

// An upstream failure surfaces the error, releases the camera and triggers no
// refresh or retry.
func TestCoordinatorStartFailure(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)
	api.startErr = &upstream.APIError{StatusCode: 500, Message: "camera not reachable"}
	coord, refreshes := testCoordinator(t, api, map[string]bool{})

	err := coord.Start(context.Background(), startReq("Cam1"))
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "camera not reachable" {
		t.Fatalf("Start = %v, want upstream APIError", err)
	}
	if *refreshes != 0 {
		t.Error("failed command triggered a refresh")
	}
	if api.callCount("start") != 1 {
		t.Errorf("start calls = %d, want exactly 1 (no retry)", api.callCount("start"))
	}
	if got := coord.State("Cam1"); got != OpIdle {
		t.Errorf("state after failure = %q, want idle", got)
	}
}

// Delete is refused locally, without a network call, while the reconciled
// state says the camera is recording.
func TestCoordinatorDeleteWhileRecording(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)
	coord, _ := testCoordinator(t, api, map[string]bool{"Cam1": true})

	if err := coord.Delete(context.Background(), "c1"); !errors.Is(err, ErrCameraRecording) {
		t.Fatalf("Delete = %v, want ErrCameraRecording", err)
	}
	if api.callCount("delete") != 0 {
		t.Error("guarded delete reached the network")
	}
	if _, ok := coord.registry.ByID("c1"); !ok {
		t.Error("camera vanished from the registry despite the rejected delete")
	}
}

func TestCoordinatorDelete(t *testing.T) {
	api := newFakeAPI([]models.Camera{{ID: "c1", ShopID: "s1", Name: "Cam1"}}, nil)
	coord, refreshes := testCoordinator(t, api, map[string]bool{})

	if err := coord.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := coord.registry.ByID("c1"); ok {
		t.Error("camera still in registry after delete")
	}
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", *refreshes)
	}
}
