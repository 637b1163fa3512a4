package http

import (
	"github.com/hypolab/workspace/internal/workspace/domain"
	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/pkg/wsclient"
)

func toWorkspaceResponse(w domain.WorkspaceWithRole) wsclient.WorkspaceResponse {
	return wsclient.WorkspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		CreatedBy: w.CreatedBy,
		CreatedAt: w.CreatedAt,
		Role:      w.Role,
	}
}

func toMemberResponse(m domain.Member) wsclient.MemberResponse {
	return wsclient.MemberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		JoinedAt:    m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// toInvitationResponse drops the token. Only the accept URL handed to the
// inviting admin ever carries it.
func toInvitationResponse(inv domain.Invitation) wsclient.InvitationResponse {
	return wsclient.InvitationResponse{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        inv.Role,
		Message:     inv.Message,
		Status:      string(inv.Status),
		InvitedBy:   inv.InvitedBy,
		CreatedAt:   inv.CreatedAt,
		ExpiresAt:   inv.ExpiresAt,
		AcceptedAt:  inv.AcceptedAt,
		AcceptedBy:  inv.AcceptedBy,
		RevokedAt:   inv.RevokedAt,
	}
}

func toCreateInvitationResponse(res service.CreateResult) wsclient.CreateInvitationResponse {
	return wsclient.CreateInvitationResponse{
		Invitation:   toInvitationResponse(res.Invitation),
		AcceptURL:    res.AcceptURL,
		NoticeQueued: res.NoticeQueued,
	}
}

func toPreviewResponse(p domain.InvitationPreview) wsclient.InvitationPreviewResponse {
	return wsclient.InvitationPreviewResponse{
		Email:         p.Email,
		Role:          p.Role,
		Message:       p.Message,
		WorkspaceID:   p.WorkspaceID,
		WorkspaceName: p.WorkspaceName,
		InviterName:   p.InviterName,
		Status:        string(p.Status),
		Expired:       p.Expired,
		ExpiresAt:     p.ExpiresAt,
	}
}
