package storageclient

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/utils/httpclients"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Client talks to the file storage service. It fetches attachment text
// content by URL and removes stored objects by path.
type Client struct {
	cfg    *config.Config
	client *resty.Client
}

// NewClient builds a storage client.
func NewClient(cfg *config.Config) *Client {
	client := httpclients.NewClient("storage")
	if cfg.StorageAPIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.StorageAPIKey)
	}
	return &Client{cfg: cfg, client: client}
}

// FetchText downloads the text content behind a storage URL.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"failed to fetch attachment content",
			err,
			"storage-fetch-failed",
		)
	}
	if resp.IsError() {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("storage returned status %d", resp.StatusCode()),
			nil,
			"storage-fetch-status",
		)
	}
	return resp.String(), nil
}

// RemoveByPath deletes the stored object at the given path.
func (c *Client) RemoveByPath(ctx context.Context, path string) error {
	if c.cfg.StorageBaseURL == "" {
		return nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("path", path).
		Delete(c.cfg.StorageBaseURL + "/v1/files")
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"failed to remove stored file",
			err,
			"storage-remove-failed",
		)
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("storage returned status %d", resp.StatusCode()),
			nil,
			"storage-remove-status",
		)
	}
	return nil
}
