package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/DocChat/internal/adapter/utils"
	"github.com/akolanti/DocChat/internal/handlers"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var (
	authToken string
	logMW     = logger_i.NewLogger("middleware")
)

// InitAuth enables bearer-token checks on every wrapped route. An empty token
// leaves the API open.
func InitAuth(token string) {
	authToken = token
	if token == "" {
		logMW.Warn("AUTH_TOKEN not set, API is unauthenticated")
	}
}

var GetHandler = Wrap(handlers.GetHandler)

var CreateSessionHandler = Wrap(handlers.CreateSessionHandler)
var GetSessionHandler = Wrap(handlers.GetSessionHandler)
var DeleteSessionHandler = Wrap(handlers.DeleteSessionHandler)
var PostDocumentHandler = Wrap(handlers.PostDocumentHandler)
var AskHandler = Wrap(handlers.AskHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(utils.GetRoutePattern(r), strconv.Itoa(rec.Status)).Inc()
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logMW
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	return authenticate(re)
}
