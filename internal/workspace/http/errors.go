package http

import (
	"log/slog"
	"net/http"

	"github.com/hypolab/workspace/internal/workspace/service"
	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/hypolab/workspace/pkg/slogx"
	"github.com/hypolab/workspace/pkg/wsclient"
)

var statusByCode = map[service.Code]int{
	service.CodeUnauthorized: http.StatusUnauthorized,
	service.CodeForbidden:    http.StatusForbidden,
	service.CodeInvalidInput: http.StatusBadRequest,
	service.CodeNotFound:     http.StatusNotFound,
	service.CodeConflict:     http.StatusConflict,
	service.CodeGone:         http.StatusGone,
}

// writeServiceError maps a coded service error onto its status. Anything
// else is a 500 whose detail stays in the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := service.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		httpx.WriteError(w, status, string(code), err.Error())
		return
	}

	slogx.FromContext(r.Context()).Error(msg, slog.Any("err", err))
	httpx.WriteError(w, http.StatusInternalServerError, wsclient.ErrorCodeServerError, "internal error")
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, wsclient.ErrorCodeInvalidInput, desc)
}
