package cameras

import "github.com/shopsentry/dashboard/internal/models"

// Reconcile merges a camera list with the latest polled recording statuses
// into display-ready rows. A camera is recording iff some status entry
// carries its name (the status payload has no camera id). Pure: inputs are
// not mutated and no I/O happens here, which keeps the merge testable apart
// from the polling plumbing.
func Reconcile(cameras []models.Camera, statuses []models.RecordingStatus) []models.CameraWithStatus {
	out := make([]models.CameraWithStatus, 0, len(cameras))
	for _, cam := range cameras {
		row := models.CameraWithStatus{Camera: cam}
		for i := range statuses {
			if statuses[i].CameraName == cam.Name {
				startedAt := statuses[i].StartedAt
				row.IsRecording = true
				row.RecordingStartedAt = &startedAt
				break
			}
		}
		out = append(out, row)
	}
	return out
}
