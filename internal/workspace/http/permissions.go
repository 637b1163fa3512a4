package http

import (
	"net/http"

	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/rbac"
	"github.com/hypolab/workspace/pkg/wsclient"
)

// PermissionTableHandler godoc
//
//	@Summary		Role permission table
//	@Description	Every role's grants, for clients that mirror the checks locally.
//	@Tags			Permissions
//	@Produce		json
//	@Success		200	{object}	wsclient.PermissionTableResponse
//	@Failure		401	{object}	wsclient.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/permissions [get].
func PermissionTableHandler(engine *rbac.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, wsclient.PermissionTableResponse{Roles: engine.Views()})
	}
}
