package shareclient

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"parley-server/services/chat-api/internal/utils/httpclients"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// SharedThreadView is the public shape of a shared thread.
type SharedThreadView struct {
	Token       string `json:"token"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   string `json:"created_at"`
}

// SharedMessageView is the public shape of a shared message.
type SharedMessageView struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client consumes the public share endpoints of a chat-api deployment
// on behalf of unauthenticated callers.
type Client struct {
	baseURL string
	client  *resty.Client
}

// NewClient builds a share relay client against a service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  httpclients.NewClient("share"),
	}
}

// Fetch retrieves a shared thread by token. A non-empty password is
// submitted via POST the way password-protected shares require.
func (c *Client) Fetch(ctx context.Context, token, password string) (*SharedThreadView, error) {
	var view SharedThreadView
	var body errorBody

	req := c.client.R().
		SetContext(ctx).
		SetResult(&view).
		SetError(&body)

	var resp *resty.Response
	var err error
	if password != "" {
		resp, err = req.
			SetBody(map[string]string{"password": password}).
			Post(c.shareURL(token))
	} else {
		resp, err = req.Get(c.shareURL(token))
	}
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	if resp.IsError() {
		return nil, c.endpointError(ctx, resp, body)
	}
	return &view, nil
}

// Messages retrieves the messages of a public share.
func (c *Client) Messages(ctx context.Context, token string) ([]SharedMessageView, error) {
	var views []SharedMessageView
	var body errorBody

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&views).
		SetError(&body).
		Get(c.shareURL(token) + "/messages")
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	if resp.IsError() {
		return nil, c.endpointError(ctx, resp, body)
	}
	return views, nil
}

func (c *Client) shareURL(token string) string {
	return fmt.Sprintf("%s/api/shared/%s", c.baseURL, token)
}

func (c *Client) transportError(ctx context.Context, err error) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		"share endpoint unreachable",
		err,
		"share-relay-transport-error",
	)
}

func (c *Client) endpointError(ctx context.Context, resp *resty.Response, body errorBody) error {
	message := body.Error
	if message == "" {
		message = fmt.Sprintf("share endpoint returned status %d", resp.StatusCode())
	}
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.HTTPStatusToErrorType(resp.StatusCode()),
		message,
		nil,
		"share-relay-endpoint-error",
	)
}
