package cameras

import "errors"

// Guard violations are rejected locally and never reach the network.
var (
	ErrNameRequired     = errors.New("camera name is required")
	ErrDuplicateName    = errors.New("a camera with that name already exists in this shop")
	ErrCameraNotFound   = errors.New("camera not found")
	ErrCameraBusy       = errors.New("another operation is in flight for this camera")
	ErrAlreadyRecording = errors.New("camera is already recording")
	ErrNotRecording     = errors.New("camera is not recording")
	ErrCameraRecording  = errors.New("camera cannot be deleted while it is recording")
	ErrPanelClosed      = errors.New("camera panel is closed")
)
