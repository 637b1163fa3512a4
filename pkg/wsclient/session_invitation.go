package wsclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListInvitationsOptions filters and pages a listing. Zero values take the
// server defaults.
type ListInvitationsOptions struct {
	Status   string
	Page     int
	PageSize int
}

// CreateInvitation requires manage_team on invitation.
func (s *Session) CreateInvitation(ctx context.Context, workspaceID string, req CreateInvitationRequest) (*CreateInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, workspacePath(workspaceID, "invitations"), req)
	if err != nil {
		return nil, err
	}

	var out CreateInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListInvitations(ctx context.Context, workspaceID string, opts ListInvitationsOptions) (*ListInvitationsResponse, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Page != 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize != 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	path := workspacePath(workspaceID, "invitations")
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ListInvitationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RevokeInvitation(ctx context.Context, workspaceID, invitationID string) (*InvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, workspacePath(workspaceID, "invitations", invitationID, "revoke"), nil)
	if err != nil {
		return nil, err
	}

	var out InvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendInvitation extends the expiry and re-sends the notice. The token
// and therefore the accept link stay the same.
func (s *Session) ResendInvitation(ctx context.Context, workspaceID, invitationID string) (*CreateInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, workspacePath(workspaceID, "invitations", invitationID, "resend"), nil)
	if err != nil {
		return nil, err
	}

	var out CreateInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation redeems token as the session's user, whose email must
// match the invitation.
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*AcceptInvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var out AcceptInvitationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
