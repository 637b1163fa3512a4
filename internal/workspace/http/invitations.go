package http

import (
	"net/http"
	"strconv"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/wsclient"
)

type InvitationsHandler struct {
	Invitations *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Invite someone to a workspace
//	@Description	Creates a pending invitation and queues the invitation email. The accept URL carries the token and is only returned here and on resend.
//	@Description	notice_queued is false when the email could not be queued; the invitation exists either way.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			workspaceID	path		string								true	"Workspace ID"
//	@Param			request		body		wsclient.CreateInvitationRequest	true	"Invitation"
//	@Success		201			{object}	wsclient.CreateInvitationResponse
//	@Failure		400			{object}	wsclient.ErrorResponse	"invalid email, role or message"
//	@Failure		401			{object}	wsclient.ErrorResponse
//	@Failure		403			{object}	wsclient.ErrorResponse	"manage_team on invitation required"
//	@Failure		409			{object}	wsclient.ErrorResponse	"already a member, or a pending invitation exists"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req wsclient.CreateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	res, err := h.Invitations.Create(r.Context(), actor, r.PathValue("workspaceID"), service.CreateInvitationInput{
		Email:   req.Email,
		Role:    req.Role,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, r, "failed to create invitation", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCreateInvitationResponse(res))
}

// HandleList godoc
//
//	@Summary		List invitations
//	@Description	Newest first. Pending invitations past their expiry are reported as expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			workspaceID	path		string	true	"Workspace ID"
//	@Param			status		query		string	false	"pending, accepted, expired or revoked"
//	@Param			page		query		int		false	"1-based page"		default(1)
//	@Param			page_size	query		int		false	"Items per page"	default(20)	maximum(100)
//	@Success		200			{object}	wsclient.ListInvitationsResponse
//	@Failure		400			{object}	wsclient.ErrorResponse
//	@Failure		403			{object}	wsclient.ErrorResponse	"manage_team on invitation required"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, err := queryInt(q.Get("page"))
	if err != nil {
		writeBadRequest(w, "page must be an integer")
		return
	}
	pageSize, err := queryInt(q.Get("page_size"))
	if err != nil {
		writeBadRequest(w, "page_size must be an integer")
		return
	}

	res, err := h.Invitations.List(r.Context(), actor, r.PathValue("workspaceID"), q.Get("status"), page, pageSize)
	if err != nil {
		writeServiceError(w, r, "failed to list invitations", err)
		return
	}

	resp := wsclient.ListInvitationsResponse{
		Invitations: make([]wsclient.InvitationResponse, len(res.Items)),
		Total:       res.Total,
		Page:        res.Page,
		PageSize:    res.PageSize,
	}
	for i, inv := range res.Items {
		resp.Invitations[i] = toInvitationResponse(inv)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRevoke godoc
//
//	@Summary		Revoke a pending invitation
//	@Tags			Invitations
//	@Produce		json
//	@Param			workspaceID		path		string	true	"Workspace ID"
//	@Param			invitationID	path		string	true	"Invitation ID"
//	@Success		200				{object}	wsclient.InvitationResponse
//	@Failure		403				{object}	wsclient.ErrorResponse	"manage_team on invitation required"
//	@Failure		404				{object}	wsclient.ErrorResponse
//	@Failure		409				{object}	wsclient.ErrorResponse	"no longer pending"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/invitations/{invitationID}/revoke [post].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	inv, err := h.Invitations.Revoke(r.Context(), actor, r.PathValue("workspaceID"), r.PathValue("invitationID"))
	if err != nil {
		writeServiceError(w, r, "failed to revoke invitation", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(inv))
}

// HandleResend godoc
//
//	@Summary		Resend a pending invitation
//	@Description	Pushes the expiry out by the full validity period and queues the email again. The token is unchanged.
//	@Tags			Invitations
//	@Produce		json
//	@Param			workspaceID		path		string	true	"Workspace ID"
//	@Param			invitationID	path		string	true	"Invitation ID"
//	@Success		200				{object}	wsclient.CreateInvitationResponse
//	@Failure		403				{object}	wsclient.ErrorResponse	"manage_team on invitation required"
//	@Failure		404				{object}	wsclient.ErrorResponse
//	@Failure		409				{object}	wsclient.ErrorResponse	"accepted or revoked"
//	@Failure		410				{object}	wsclient.ErrorResponse	"expired"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{workspaceID}/invitations/{invitationID}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	res, err := h.Invitations.Resend(r.Context(), actor, r.PathValue("workspaceID"), r.PathValue("invitationID"))
	if err != nil {
		writeServiceError(w, r, "failed to resend invitation", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCreateInvitationResponse(res))
}

// HandlePreview godoc
//
//	@Summary		Preview an invitation
//	@Description	Public. Shows the holder of a token what they were invited to before they sign in.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string	true	"Invitation token"
//	@Success		200		{object}	wsclient.InvitationPreviewResponse
//	@Failure		404		{object}	wsclient.ErrorResponse	"unknown token"
//	@Failure		429		{object}	wsclient.ErrorResponse
//	@Router			/v1/invitations/preview [get].
func (h *InvitationsHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.Invitations.Preview(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, "failed to preview invitation", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreviewResponse(p))
}

// HandleAccept godoc
//
//	@Summary		Accept an invitation
//	@Description	Joins the caller to the workspace with the invited role. The caller's email must match the invitation.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wsclient.AcceptInvitationRequest	true	"Token"
//	@Success		200		{object}	wsclient.AcceptInvitationResponse
//	@Failure		401		{object}	wsclient.ErrorResponse
//	@Failure		403		{object}	wsclient.ErrorResponse	"email does not match or is not verified"
//	@Failure		404		{object}	wsclient.ErrorResponse	"unknown token"
//	@Failure		409		{object}	wsclient.ErrorResponse	"already processed or already a member"
//	@Failure		410		{object}	wsclient.ErrorResponse	"expired"
//	@Failure		429		{object}	wsclient.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())

	var req wsclient.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	// The email match inside Accept is only as good as the address.
	if !id.EmailVerified {
		writeServiceError(w, r, "failed to accept invitation", service.ErrEmailUnverified)
		return
	}

	res, err := h.Invitations.Accept(r.Context(), req.Token, id.Subject)
	if err != nil {
		writeServiceError(w, r, "failed to accept invitation", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, wsclient.AcceptInvitationResponse{
		Invitation:  toInvitationResponse(res.Invitation),
		WorkspaceID: res.Membership.WorkspaceID,
		Role:        res.Membership.Role,
		RedirectURL: res.RedirectURL,
	})
}

// queryInt treats a missing value as zero, which the service reads as its
// default.
func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
