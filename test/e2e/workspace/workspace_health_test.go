//go:build e2e

package workspace_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/hypolab/workspace/pkg/wsclient"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))
	client := wsclient.NewClient(baseURL)
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestSwaggerServed(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))

	resp, err := http.Get(baseURL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/v1/invitations/preview")
}

func TestRejectsForeignTokens(t *testing.T) {
	baseURL := setupWorkspaceContainer(t, withEnv(relaxedLimits))

	session := wsclient.NewClient(baseURL).NewSession("not-a-jwt")
	_, err := session.ListWorkspaces(context.Background())
	requireAPIError(t, err, wsclient.ErrorCodeUnauthorized)
}
