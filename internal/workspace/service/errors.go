package service

import (
	"errors"
	"fmt"
)

// Code is the stable, machine readable class of a service error. The HTTP
// layer picks a status from it.
type Code string

const (
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInvalidInput Code = "invalid_input"
	CodeConflict     Code = "conflict"
	CodeNotFound     Code = "not_found"
	CodeGone         Code = "gone"
)

// Error is a coded service error. errors.Is matches an Error against its
// class sentinel (ErrConflict and friends) as well as against itself.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

// Is reports a match against a class sentinel, one with no message, of the
// same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Code == e.Code
}

func newError(code Code, msg string) *Error { return &Error{Code: code, Message: msg} }

// Errorf builds an ad hoc error of the given class.
func Errorf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or "" for
// errors that did not originate here (store failures and the like).
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Class sentinels.
var (
	ErrUnauthorized = &Error{Code: CodeUnauthorized}
	ErrForbidden    = &Error{Code: CodeForbidden}
	ErrInvalidInput = &Error{Code: CodeInvalidInput}
	ErrConflict     = &Error{Code: CodeConflict}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrGone         = &Error{Code: CodeGone}
)

var (
	ErrNotMember         = newError(CodeForbidden, "not a member of this workspace")
	ErrEmailMismatch     = newError(CodeForbidden, "invitation was sent to a different email address")
	ErrInvalidEmail      = newError(CodeInvalidInput, "email address is not valid")
	ErrInvalidRole       = newError(CodeInvalidInput, "role must be one of admin, member, viewer")
	ErrMessageTooLong    = newError(CodeInvalidInput, "message must be at most 500 characters")
	ErrInvalidStatus     = newError(CodeInvalidInput, "status must be one of pending, accepted, expired, revoked")
	ErrInvalidPage       = newError(CodeInvalidInput, "page must be at least 1 and page_size between 1 and 100")
	ErrInvalidName       = newError(CodeInvalidInput, "name must be between 1 and 100 characters")
	ErrUserExists        = newError(CodeConflict, "a member with this email already exists")
	ErrInvitationExists  = newError(CodeConflict, "a pending invitation for this email already exists")
	ErrAlreadyProcessed  = newError(CodeConflict, "invitation has already been processed")
	ErrAlreadyMember     = newError(CodeConflict, "user is already a member of this workspace")
	ErrLastAdmin         = newError(CodeConflict, "a workspace must keep at least one admin")
	ErrInvitationExpired = newError(CodeGone, "invitation has expired")
	ErrInvitationUnknown = newError(CodeNotFound, "invitation not found")
	ErrWorkspaceUnknown  = newError(CodeNotFound, "workspace not found")
	ErrMemberUnknown     = newError(CodeNotFound, "member not found")
	ErrUserUnknown       = newError(CodeUnauthorized, "identity is not known to this service")
	ErrEmailUnverified   = newError(CodeForbidden, "the identity provider has not verified this email address")
)
