/*
Package wsclient is the Go client for the workspace service.

Public calls hang off Client; calls that need an identity token hang off a
Session created from it:

	client := wsclient.NewClient("https://workspace.example.com")

	preview, err := client.PreviewInvitation(ctx, token)

	session := client.NewSession(idToken)
	accepted, err := session.AcceptInvitation(ctx, token)

# Permission gate

Gate mirrors the server's permission checks from the caller's permissions
view so a UI can hide actions that would be refused:

	gate := wsclient.NewGate()
	if err := gate.Refresh(ctx, session, workspaceID); err != nil {
		// gate now denies everything
	}
	if gate.Can(rbac.PermManageTeam, rbac.ResourceInvitation) {
		// show the invite button
	}

The gate is advisory. The server resolves the caller's role itself and
re-checks every request.

# Errors

Non-2xx responses come back as *APIError. HasCode matches on the error
code, e.g. HasCode(err, ErrorCodeGone) for an expired invitation.
*/
package wsclient
