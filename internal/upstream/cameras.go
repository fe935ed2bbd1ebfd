package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/shopsentry/dashboard/internal/models"
)

// ListCameras returns all cameras registered for the shop.
func (c *Client) ListCameras(ctx context.Context, shopID string) ([]models.Camera, error) {
	var cameras []models.Camera
	if err := c.do(ctx, resty.MethodGet, shopPath(shopID, "/cameras"), nil, &cameras); err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	return cameras, nil
}

type createCameraRequest struct {
	CameraName string `json:"camera_name"`
}

// CreateCamera registers a new camera for the shop and returns the created
// record with its server-issued id.
func (c *Client) CreateCamera(ctx context.Context, shopID, name string) (*models.Camera, error) {
	var camera models.Camera
	body := createCameraRequest{CameraName: name}
	if err := c.do(ctx, resty.MethodPost, shopPath(shopID, "/cameras"), body, &camera); err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}
	return &camera, nil
}

// DeleteCamera removes the camera and returns the deleted camera id.
func (c *Client) DeleteCamera(ctx context.Context, shopID, cameraID string) (string, error) {
	var deletedID string
	path := shopPath(shopID, "/cameras/"+url.PathEscape(cameraID))
	if err := c.do(ctx, resty.MethodDelete, path, nil, &deletedID); err != nil {
		return "", fmt.Errorf("delete camera: %w", err)
	}
	return deletedID, nil
}
