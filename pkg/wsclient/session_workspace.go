package wsclient

import (
	"context"
	"net/http"
	"net/url"
)

func workspacePath(workspaceID string, rest ...string) string {
	p := "/v1/workspaces/" + url.PathEscape(workspaceID)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// PermissionTable fetches every role's grants.
func (s *Session) PermissionTable(ctx context.Context) (*PermissionTableResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/permissions", nil)
	if err != nil {
		return nil, err
	}

	var out PermissionTableResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPermissions fetches what the session's user may do in the workspace.
func (s *Session) MyPermissions(ctx context.Context, workspaceID string) (*PermissionsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, workspacePath(workspaceID, "permissions"), nil)
	if err != nil {
		return nil, err
	}

	var out PermissionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkspace creates a workspace with the session's user as admin.
func (s *Session) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*WorkspaceResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/workspaces", req)
	if err != nil {
		return nil, err
	}

	var out WorkspaceResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListWorkspaces(ctx context.Context) (*ListWorkspacesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/workspaces", nil)
	if err != nil {
		return nil, err
	}

	var out ListWorkspacesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetWorkspace(ctx context.Context, workspaceID string) (*WorkspaceResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, workspacePath(workspaceID), nil)
	if err != nil {
		return nil, err
	}

	var out WorkspaceResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListMembers(ctx context.Context, workspaceID string) (*ListMembersResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, workspacePath(workspaceID, "members"), nil)
	if err != nil {
		return nil, err
	}

	var out ListMembersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeMemberRole requires manage_team on user.
func (s *Session) ChangeMemberRole(ctx context.Context, workspaceID, userID, role string) (*MemberResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, workspacePath(workspaceID, "members", userID), ChangeRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	var out MemberResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember requires manage_team on user.
func (s *Session) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, workspacePath(workspaceID, "members", userID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
