//go:build e2e

package workspace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/hypolab/workspace/pkg/cryptox"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/hypolab/workspace/pkg/wsclient"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and token helpers for the workspace service end-to-end
 * tests. Tokens are minted locally with a throwaway key whose JWKS is copied
 * into every container.
 */

const (
	testImageName = "hypolab-workspace-test:latest"

	testIssuer   = "https://id.e2e.test"
	testKeyID    = "e2e-key-001"
	jwksPath     = "/etc/workspace/jwks.json"
	testBaseURL  = "https://app.e2e.test"
	containerEnv = "test"
)

var (
	signer    *jwtx.Signer
	jwksBytes []byte
)

// TestMain builds the image once and mints the signing key shared by all
// tests.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Workspace Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	if err := initSigner(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create signing key: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Workspace Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/workspace/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

func initSigner() error {
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}
	signer, err = jwtx.NewSigner(testKeyID, pemKey)
	if err != nil {
		return err
	}
	jwksBytes, err = json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	return err
}

// relaxedLimits keeps the suite clear of the production rate limits. Tests
// that exercise limiting start a container without them.
var relaxedLimits = map[string]string{
	"WORKSPACE_RATE_PREVIEW_REQUESTS": "1000",
	"WORKSPACE_RATE_PREVIEW_BURST":    "1000",
	"WORKSPACE_RATE_ACCEPT_REQUESTS":  "1000",
	"WORKSPACE_RATE_ACCEPT_BURST":     "1000",
	"WORKSPACE_RATE_API_REQUESTS":     "1000",
	"WORKSPACE_RATE_API_BURST":        "1000",
}

type containerOption func(*testcontainers.ContainerRequest)

func withEnv(kv map[string]string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		for k, v := range kv {
			req.Env[k] = v
		}
	}
}

func withNetwork(name string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Networks = append(req.Networks, name)
	}
}

// setupWorkspaceContainer starts the service on an in-memory SQLite database
// and returns its base URL. The container is terminated with the test.
func setupWorkspaceContainer(t *testing.T, opts ...containerOption) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ENV":                       containerEnv,
			"LOG_LEVEL":                 "info",
			"LOG_FORMAT":                "json",
			"WORKSPACE_DATABASE_DRIVER": "sqlite",
			"WORKSPACE_DATABASE_DSN":    ":memory:",
			"WORKSPACE_BASE_URL":        testBaseURL,
			"WORKSPACE_JWKS_FILE":       jwksPath,
			"WORKSPACE_TOKEN_ISSUER":    testIssuer,
		},
		Files: []testcontainers.ContainerFile{{
			Reader:            bytes.NewReader(jwksBytes),
			ContainerFilePath: jwksPath,
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// identityToken signs a token the service will accept.
func identityToken(t *testing.T, sub, email, name string) string {
	t.Helper()
	tok, err := signer.Sign(jwtx.NewIdentityClaims(sub, email, name, testIssuer, nil, time.Hour, time.Now()))
	require.NoError(t, err)
	return tok
}

// newSession returns a client session authenticated as the given user.
func newSession(t *testing.T, baseURL, sub, email, name string) *wsclient.Session {
	t.Helper()
	return wsclient.NewClient(baseURL).NewSession(identityToken(t, sub, email, name))
}

// requireAPIError asserts err is an API error with the given code.
func requireAPIError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, wsclient.HasCode(err, code), "expected %s, got %v", code, err)
}
