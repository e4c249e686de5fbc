package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/akolanti/DocChat/internal/adapter/utils"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/handlers"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.writer.Header().Set("X-Trace-Id", trace)
	re.req = req.WithContext(ctx)

	re.logger.Debug("trace middleware injected")
	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), re.logger) {
		re.badRequest.isBadRequest = true
		re.badRequest.errorMessage = "Unauthorized"
		re.badRequest.httpCode = http.StatusUnauthorized
		return re
	}
	return re
}

// IsValidBearerToken accepts everything when no token is configured.
func IsValidBearerToken(authHeader string, log *logger_i.Logger) bool {
	if authToken == "" {
		return true
	}
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(authToken)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}
	return true
}

func handleBadRequest(re requestResponseStruct) {
	remote := ""
	if re.req != nil {
		remote = re.req.RemoteAddr
	}
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", remote)
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, "", re.badRequest.errorMessage)
}
