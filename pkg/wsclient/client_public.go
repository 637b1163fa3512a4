package wsclient

import (
	"context"
	"net/http"
	"net/url"
)

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service can reach its database.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// PreviewInvitation fetches the public summary of an invitation. No
// identity is needed, only the token.
func (c *Client) PreviewInvitation(ctx context.Context, token string) (*InvitationPreviewResponse, error) {
	path := "/v1/invitations/preview?" + url.Values{"token": {token}}.Encode()
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var preview InvitationPreviewResponse
	if err := decodeJSON(resp, &preview, http.StatusOK); err != nil {
		return nil, err
	}
	return &preview, nil
}
