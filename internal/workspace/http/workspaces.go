package http

import (
	"net/http"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/wsclient"
)

type WorkspacesHandler struct {
	Workspaces *service.WorkspaceService
}

// HandleCreate godoc
//
//	@Summary		Create a workspace
//	@Description	Creates a workspace with the caller as its first admin.
//	@Tags			Workspaces
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wsclient.CreateWorkspaceRequest	true	"Workspace name"
//	@Success		201		{object}	wsclient.WorkspaceResponse
//	@Failure		400		{object}	wsclient.ErrorResponse	"invalid name"
//	@Failure		401		{object}	wsclient.ErrorResponse
//	@Failure		500		{object}	wsclient.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces [post].
func (h *WorkspacesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())

	var req wsclient.CreateWorkspaceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	ws, err := h.Workspaces.Create(r.Context(), id.Subject, req.Name)
	if err != nil {
		writeServiceError(w, r, "failed to create workspace", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toWorkspaceResponse(ws))
}

// HandleList godoc
//
//	@Summary		List my workspaces
//	@Description	Lists the workspaces the caller belongs to, with the caller's role in each.
//	@Tags			Workspaces
//	@Produce		json
//	@Success		200	{object}	wsclient.ListWorkspacesResponse
//	@Failure		401	{object}	wsclient.ErrorResponse
//	@Failure		500	{object}	wsclient.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces [get].
func (h *WorkspacesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())

	list, err := h.Workspaces.ListForUser(r.Context(), id.Subject)
	if err != nil {
		writeServiceError(w, r, "failed to list workspaces", err)
		return
	}

	resp := wsclient.ListWorkspacesResponse{Workspaces: make([]wsclient.WorkspaceResponse, len(list))}
	for i, ws := range list {
		resp.Workspaces[i] = toWorkspaceResponse(ws)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet godoc
//
//	@Summary		Get a workspace
//	@Tags			Workspaces
//	@Produce		json
//	@Param			workspaceID	path		string	true	"Workspace ID"
//	@Success		200			{object}	wsclient.WorkspaceResponse
//	@Failure		401			{object}	wsclient.ErrorResponse
//	@Failure		403			{object}	wsclient.ErrorResponse	"not a member"
//	@Failure		404			{object}	wsclient.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID} [get].
func (h *WorkspacesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	ws, err := h.Workspaces.Get(r.Context(), actor, r.PathValue("workspaceID"))
	if err != nil {
		writeServiceError(w, r, "failed to get workspace", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// HandlePermissions godoc
//
//	@Summary		My permissions in a workspace
//	@Description	Returns what the caller's role allows here, in the shape the client side gate loads.
//	@Tags			Permissions
//	@Produce		json
//	@Param			workspaceID	path		string	true	"Workspace ID"
//	@Success		200			{object}	wsclient.PermissionsResponse
//	@Failure		401			{object}	wsclient.ErrorResponse
//	@Failure		403			{object}	wsclient.ErrorResponse	"not a member"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/permissions [get].
func (h *WorkspacesHandler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	httpx.WriteJSON(w, http.StatusOK, wsclient.PermissionsResponse{
		WorkspaceID:     r.PathValue("workspaceID"),
		PermissionsView: h.Workspaces.Permissions(actor),
	})
}

// HandleListMembers godoc
//
//	@Summary		List members
//	@Tags			Members
//	@Produce		json
//	@Param			workspaceID	path		string	true	"Workspace ID"
//	@Success		200			{object}	wsclient.ListMembersResponse
//	@Failure		401			{object}	wsclient.ErrorResponse
//	@Failure		403			{object}	wsclient.ErrorResponse	"read on team required"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/members [get].
func (h *WorkspacesHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	members, err := h.Workspaces.ListMembers(r.Context(), actor, r.PathValue("workspaceID"))
	if err != nil {
		writeServiceError(w, r, "failed to list members", err)
		return
	}

	resp := wsclient.ListMembersResponse{Members: make([]wsclient.MemberResponse, len(members))}
	for i, m := range members {
		resp.Members[i] = toMemberResponse(m)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleChangeRole godoc
//
//	@Summary		Change a member's role
//	@Description	Demoting the last admin is refused with 409.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			workspaceID	path		string						true	"Workspace ID"
//	@Param			userID		path		string						true	"Member user ID"
//	@Param			request		body		wsclient.ChangeRoleRequest	true	"New role"
//	@Success		200			{object}	wsclient.MemberResponse
//	@Failure		400			{object}	wsclient.ErrorResponse	"invalid role"
//	@Failure		403			{object}	wsclient.ErrorResponse	"manage_team on user required"
//	@Failure		404			{object}	wsclient.ErrorResponse	"not a member"
//	@Failure		409			{object}	wsclient.ErrorResponse	"last admin"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/members/{userID} [patch].
func (h *WorkspacesHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req wsclient.ChangeRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	m, err := h.Workspaces.ChangeRole(r.Context(), actor, r.PathValue("workspaceID"), r.PathValue("userID"), req.Role)
	if err != nil {
		writeServiceError(w, r, "failed to change role", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, wsclient.MemberResponse{
		UserID:    m.UserID,
		Role:      m.Role,
		JoinedAt:  m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
}

// HandleRemoveMember godoc
//
//	@Summary		Remove a member
//	@Description	Removing the last admin is refused with 409.
//	@Tags			Members
//	@Param			workspaceID	path	string	true	"Workspace ID"
//	@Param			userID		path	string	true	"Member user ID"
//	@Success		204
//	@Failure		403	{object}	wsclient.ErrorResponse	"manage_team on user required"
//	@Failure		404	{object}	wsclient.ErrorResponse	"not a member"
//	@Failure		409	{object}	wsclient.ErrorResponse	"last admin"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/members/{userID} [delete].
func (h *WorkspacesHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	if err := h.Workspaces.RemoveMember(r.Context(), actor, r.PathValue("workspaceID"), r.PathValue("userID")); err != nil {
		writeServiceError(w, r, "failed to remove member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
