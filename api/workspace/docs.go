// Package workspace registers the service's OpenAPI document with swag. It
// mirrors the godoc annotations on the handlers in internal/workspace/http,
// in the layout `swag init` emits; the router tests fail when a route is
// missing from it.
package workspace

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "description": "Always 200 while the process is serving.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/wsclient.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Pings the database. 503 while it is unreachable.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/wsclient.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "database unreachable",
                        "schema": {
                            "$ref": "#/definitions/wsclient.HealthResponse"
                        }
                    }
                }
            }
        },
        "/v1/permissions": {
            "get": {
                "description": "Every role's grants, for clients that mirror the checks locally.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Permissions"
                ],
                "summary": "Role permission table",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.PermissionTableResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces": {
            "get": {
                "description": "Lists the workspaces the caller belongs to, with the caller's role in each.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workspaces"
                ],
                "summary": "List my workspaces",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ListWorkspacesResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "description": "Creates a workspace with the caller as its first admin.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workspaces"
                ],
                "summary": "Create a workspace",
                "parameters": [
                    {
                        "description": "Workspace name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wsclient.CreateWorkspaceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/wsclient.WorkspaceResponse"
                        }
                    },
                    "400": {
                        "description": "invalid name",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Workspaces"
                ],
                "summary": "Get a workspace",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.WorkspaceResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "not a member",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/permissions": {
            "get": {
                "description": "Returns what the caller's role allows here, in the shape the client side gate loads.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Permissions"
                ],
                "summary": "My permissions in a workspace",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.PermissionsResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "not a member",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/members": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Members"
                ],
                "summary": "List members",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ListMembersResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "read on team required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/members/{userID}": {
            "patch": {
                "description": "Demoting the last admin is refused with 409.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Members"
                ],
                "summary": "Change a member's role",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Member user ID",
                        "name": "userID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New role",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wsclient.ChangeRoleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.MemberResponse"
                        }
                    },
                    "400": {
                        "description": "invalid role",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "manage_team on user required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not a member",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "last admin",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "description": "Removing the last admin is refused with 409.",
                "tags": [
                    "Members"
                ],
                "summary": "Remove a member",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Member user ID",
                        "name": "userID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "manage_team on user required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not a member",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "last admin",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/invitations": {
            "get": {
                "description": "Newest first. Pending invitations past their expiry are reported as expired.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "List invitations",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "pending, accepted, expired or revoked",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 1,
                        "description": "1-based page",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "maximum": 100,
                        "type": "integer",
                        "default": 20,
                        "description": "Items per page",
                        "name": "page_size",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ListInvitationsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "manage_team on invitation required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "description": "Creates a pending invitation and queues the invitation email. The accept URL carries the token and is only returned here and on resend.\nnotice_queued is false when the email could not be queued; the invitation exists either way.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "Invite someone to a workspace",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Invitation",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wsclient.CreateInvitationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/wsclient.CreateInvitationResponse"
                        }
                    },
                    "400": {
                        "description": "invalid email, role or message",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "manage_team on invitation required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "already a member, or a pending invitation exists",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/invitations/{invitationID}/revoke": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "Revoke a pending invitation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Invitation ID",
                        "name": "invitationID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.InvitationResponse"
                        }
                    },
                    "403": {
                        "description": "manage_team on invitation required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "no longer pending",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/workspaces/{workspaceID}/invitations/{invitationID}/resend": {
            "post": {
                "description": "Pushes the expiry out by the full validity period and queues the email again. The token is unchanged.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "Resend a pending invitation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Workspace ID",
                        "name": "workspaceID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Invitation ID",
                        "name": "invitationID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.CreateInvitationResponse"
                        }
                    },
                    "403": {
                        "description": "manage_team on invitation required",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "accepted or revoked",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "410": {
                        "description": "expired",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/invitations/preview": {
            "get": {
                "description": "Public. Shows the holder of a token what they were invited to before they sign in.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "Preview an invitation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Invitation token",
                        "name": "token",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.InvitationPreviewResponse"
                        }
                    },
                    "404": {
                        "description": "unknown token",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/v1/invitations/accept": {
            "post": {
                "description": "Joins the caller to the workspace with the invited role. The caller's email must match the invitation.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Invitations"
                ],
                "summary": "Accept an invitation",
                "parameters": [
                    {
                        "description": "Token",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/wsclient.AcceptInvitationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/wsclient.AcceptInvitationResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "email does not match or is not verified",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "unknown token",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "already processed or already a member",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "410": {
                        "description": "expired",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/wsclient.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "rbac.PermissionsView": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "global": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "resources": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "wsclient.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "error_description": {
                    "type": "string"
                }
            }
        },
        "wsclient.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string",
                    "example": "ok"
                }
            }
        },
        "wsclient.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "uptime": {
                    "type": "string",
                    "example": "1h23m45s"
                },
                "version": {
                    "type": "string",
                    "example": "0.1.0"
                },
                "checks": {
                    "$ref": "#/definitions/wsclient.HealthChecks"
                }
            }
        },
        "wsclient.PermissionTableResponse": {
            "type": "object",
            "properties": {
                "roles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/rbac.PermissionsView"
                    }
                }
            }
        },
        "wsclient.PermissionsResponse": {
            "type": "object",
            "properties": {
                "workspace_id": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "global": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "resources": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "wsclient.CreateWorkspaceRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "Growth experiments"
                }
            }
        },
        "wsclient.WorkspaceResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "01J8Z3K6Q2W7X9R4T5Y6U7I8O9"
                },
                "name": {
                    "type": "string",
                    "example": "Growth experiments"
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "admin"
                }
            }
        },
        "wsclient.ListWorkspacesResponse": {
            "type": "object",
            "properties": {
                "workspaces": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/wsclient.WorkspaceResponse"
                    }
                }
            }
        },
        "wsclient.MemberResponse": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "joined_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "wsclient.ListMembersResponse": {
            "type": "object",
            "properties": {
                "members": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/wsclient.MemberResponse"
                    }
                }
            }
        },
        "wsclient.ChangeRoleRequest": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string",
                    "example": "viewer"
                }
            }
        },
        "wsclient.CreateInvitationRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "ana@example.com"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "message": {
                    "type": "string",
                    "example": "Come help with the pricing test"
                }
            }
        },
        "wsclient.InvitationResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "workspace_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "pending"
                },
                "invited_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "accepted_at": {
                    "type": "string"
                },
                "accepted_by": {
                    "type": "string"
                },
                "revoked_at": {
                    "type": "string"
                }
            }
        },
        "wsclient.CreateInvitationResponse": {
            "type": "object",
            "properties": {
                "invitation": {
                    "$ref": "#/definitions/wsclient.InvitationResponse"
                },
                "accept_url": {
                    "type": "string"
                },
                "notice_queued": {
                    "type": "boolean"
                }
            }
        },
        "wsclient.ListInvitationsResponse": {
            "type": "object",
            "properties": {
                "invitations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/wsclient.InvitationResponse"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                }
            }
        },
        "wsclient.InvitationPreviewResponse": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "message": {
                    "type": "string"
                },
                "workspace_id": {
                    "type": "string"
                },
                "workspace_name": {
                    "type": "string"
                },
                "inviter_name": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "pending"
                },
                "expired": {
                    "type": "boolean"
                },
                "expires_at": {
                    "type": "string"
                }
            }
        },
        "wsclient.AcceptInvitationRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            }
        },
        "wsclient.AcceptInvitationResponse": {
            "type": "object",
            "properties": {
                "invitation": {
                    "$ref": "#/definitions/wsclient.InvitationResponse"
                },
                "workspace_id": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "example": "member"
                },
                "redirect_url": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Identity token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Workspace Service API",
	Description:      "Workspaces, role based permissions and the invitation lifecycle.\n\nCallers authenticate with an identity token from the identity provider. The service never trusts a role sent by the caller; it reads the caller's role in the workspace from its own store on every request.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
