package wsclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

// stubServer answers every request with status and body, recording the
// last request.
func stubServer(t *testing.T, status int, body any) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(raw),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), rec
}

func TestPreviewInvitation(t *testing.T) {
	t.Parallel()

	c, rec := stubServer(t, http.StatusOK, InvitationPreviewResponse{
		Email:         "ana@example.com",
		Role:          rbac.RoleMember,
		WorkspaceName: "Lab",
		Status:        "pending",
	})

	p, err := c.PreviewInvitation(context.Background(), "tok/en+")
	require.NoError(t, err)
	require.Equal(t, "Lab", p.WorkspaceName)
	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/v1/invitations/preview", rec.path)
	require.Equal(t, "token=tok%2Fen%2B", rec.query)
	require.Empty(t, rec.auth, "preview is public")
}

func TestSessionSendsBearer(t *testing.T) {
	t.Parallel()

	c, rec := stubServer(t, http.StatusCreated, CreateInvitationResponse{AcceptURL: "https://x/accept"})
	s := c.NewSession("id-token")

	out, err := s.CreateInvitation(context.Background(), "ws 1", CreateInvitationRequest{Email: "a@example.com", Role: "viewer"})
	require.NoError(t, err)
	require.Equal(t, "https://x/accept", out.AcceptURL)
	require.Equal(t, "Bearer id-token", rec.auth)
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/v1/workspaces/ws%201/invitations", rec.path)
	require.JSONEq(t, `{"email":"a@example.com","role":"viewer"}`, rec.body)

	s.SetToken("fresh")
	_, err = s.CreateInvitation(context.Background(), "ws", CreateInvitationRequest{})
	require.NoError(t, err)
	require.Equal(t, "Bearer fresh", rec.auth)
}

func TestSessionWithoutToken(t *testing.T) {
	t.Parallel()

	c, _ := stubServer(t, http.StatusOK, nil)
	_, err := c.NewSession("").ListWorkspaces(context.Background())
	require.True(t, HasCode(err, ErrorCodeUnauthorized))
}

func TestListInvitationsQuery(t *testing.T) {
	t.Parallel()

	c, rec := stubServer(t, http.StatusOK, ListInvitationsResponse{Total: 3, Page: 2, PageSize: 1})
	s := c.NewSession("t")

	out, err := s.ListInvitations(context.Background(), "ws", ListInvitationsOptions{Status: "pending", Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Equal(t, 3, out.Total)
	require.Equal(t, "page=2&page_size=1&status=pending", rec.query)

	_, err = s.ListInvitations(context.Background(), "ws", ListInvitationsOptions{})
	require.NoError(t, err)
	require.Empty(t, rec.query)
}

func TestAPIErrors(t *testing.T) {
	t.Parallel()

	c, _ := stubServer(t, http.StatusGone, ErrorResponse{Error: ErrorCodeGone, ErrorDescription: "invitation has expired"})
	_, err := c.NewSession("t").AcceptInvitation(context.Background(), "tok")
	require.Error(t, err)
	require.True(t, HasCode(err, ErrorCodeGone))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusGone, apiErr.StatusCode)
	require.Equal(t, "gone: invitation has expired", apiErr.Error())
}

func TestAPIErrorFallback(t *testing.T) {
	t.Parallel()

	c, _ := stubServer(t, http.StatusBadGateway, nil)
	_, err := c.GetReadiness(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestRemoveMember(t *testing.T) {
	t.Parallel()

	c, rec := stubServer(t, http.StatusNoContent, nil)
	require.NoError(t, c.NewSession("t").RemoveMember(context.Background(), "ws", "u-1"))
	require.Equal(t, http.MethodDelete, rec.method)
	require.Equal(t, "/v1/workspaces/ws/members/u-1", rec.path)

	c, _ = stubServer(t, http.StatusConflict, ErrorResponse{Error: ErrorCodeConflict})
	err := c.NewSession("t").RemoveMember(context.Background(), "ws", "u-1")
	require.True(t, HasCode(err, ErrorCodeConflict))
}
