package models

// Camera is a named recording device belonging to a shop, identified by a
// server-issued id. JSON field names follow the recording service's wire
// format.
type Camera struct {
	ID     string `json:"camera_id"`
	ShopID string `json:"shop_id"`
	Name   string `json:"camera_name"`
}

// RecordingStatus is a server-reported fact that a named camera is currently
// recording. The set is replaced wholesale on every poll and matched to
// cameras by name, since the status payload carries no camera id.
type RecordingStatus struct {
	CameraName string `json:"camera_name"`
	StartedAt  int64  `json:"started_at"` // epoch seconds
	Duration   int    `json:"duration"`   // planned recording length, seconds
}

// CameraWithStatus is the display-ready merge of a camera with the latest
// polled recording state. It is recomputed by reconciliation on every poll,
// never mutated directly by user actions.
type CameraWithStatus struct {
	Camera
	IsRecording        bool   `json:"is_recording"`
	RecordingStartedAt *int64 `json:"recording_started_at,omitempty"`
}
