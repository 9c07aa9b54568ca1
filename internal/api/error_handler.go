package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/vytor/pastorprompt/internal/errors"
	"github.com/vytor/pastorprompt/internal/logger"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := errors.As(err)
	if stderrors.Is(err, context.DeadlineExceeded) {
		appErr = &errors.AppError{
			Code:    errors.ErrCodeTimeout,
			Message: "request timed out",
			Status:  http.StatusServiceUnavailable,
			Err:     err,
		}
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	// Internal details stay in the log.
	writeJSON(w, r, appErr.Status, errorEnvelope{Error: errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, &errors.AppError{
		Code:    errors.ErrCodeNotFound,
		Message: "no route for " + r.Method + " " + r.URL.Path,
		Status:  http.StatusNotFound,
	})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, &errors.AppError{
		Code:    errors.ErrCodeBadRequest,
		Message: "method " + r.Method + " not allowed on " + r.URL.Path,
		Status:  http.StatusMethodNotAllowed,
	})
}
