package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/dmitrijs2005/courseauth/internal/server/metrics"
	"github.com/dmitrijs2005/courseauth/internal/server/validation"
	"github.com/gin-gonic/gin"
)

const (
	msgUserExists    = "User already exist"
	msgRoleMissing   = "Role '%s' does not exist"
	msgWrongEmail    = "Email or password is wrong"
	msgWrongPassword = "Email or password is invalid"
	msgMalformedBody = "Invalid request body"
	msgInternal      = "Internal server error"
	msgUserCreated   = "User created successfully"
	msgUserLoggedIn  = "User logged in succesfully"
	msgStoreNotReady = "unavailable"
	msgStoreReady    = "ok"
	msgProcessAlive  = "ok"
)

var errMalformedBody = errors.New("malformed request body")

type errorResponse struct {
	Error  string                      `json:"error"`
	Fields []validation.FieldViolation `json:"fields,omitempty"`
}

// describe maps a service error to the status code, body and metrics
// outcome sent to the client. Every error kind lands somewhere, so a
// request is never left unanswered.
func (s *Server) describe(err error) (int, errorResponse, string) {
	var ve *validation.ValidationError

	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: msgMalformedBody, Fields: ve.Violations}
		if len(ve.Violations) > 0 {
			resp.Error = ve.Violations[0].Message
		}
		return http.StatusBadRequest, resp, metrics.OutcomeInvalid

	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, errorResponse{Error: msgMalformedBody}, metrics.OutcomeInvalid

	case errors.Is(err, common.ErrUserAlreadyExists):
		return s.pick(http.StatusPaymentRequired, http.StatusConflict), errorResponse{Error: msgUserExists}, metrics.OutcomeConflict

	case errors.Is(err, common.ErrRoleNotFound):
		msg := fmt.Sprintf(msgRoleMissing, s.defaultRole)
		return s.pick(http.StatusNotFound, http.StatusInternalServerError), errorResponse{Error: msg}, metrics.OutcomeNotFound

	case errors.Is(err, common.ErrUserNotFound):
		return s.pick(http.StatusNotFound, http.StatusUnauthorized), errorResponse{Error: msgWrongEmail}, metrics.OutcomeNotFound

	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: msgWrongPassword}, metrics.OutcomeDenied

	default:
		return http.StatusInternalServerError, errorResponse{Error: msgInternal}, metrics.OutcomeError
	}
}

func (s *Server) pick(legacy, current int) int {
	if s.legacyCodes {
		return legacy
	}
	return current
}

// fail writes the error response for operation and records the outcome.
// Infrastructure causes are logged, never sent.
func (s *Server) fail(c *gin.Context, operation string, err error) {
	status, body, outcome := s.describe(err)

	ctx := c.Request.Context()
	if status == http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "operation", operation, "request_id", c.GetString(requestIDKey), "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "operation", operation, "status", status, "error", err)
	}

	s.metrics.RecordAuthAttempt(operation, outcome)
	c.AbortWithStatusJSON(status, body)
}
