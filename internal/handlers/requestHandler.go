package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/DocChat/internal/adapter"
	"github.com/akolanti/DocChat/internal/adapter/utils"
	"github.com/akolanti/DocChat/internal/api"
	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/document"
	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

// GetHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Success      200
// @Router       /healthz [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// CreateSessionHandler godoc
// @Summary      Open a chat session
// @Description  Creates an empty session with no document and an empty transcript.
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  api.CreateSessionResponse
// @Router       /sessions [post]
func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}
	session, err := sessionStore().CreateSession(r.Context())
	if err != nil {
		logRH.WithTrace(r.Context()).Error("Could not create session", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Could not create session")
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToCreateSessionResponse(session))
}

// GetSessionHandler godoc
// @Summary      Get a session
// @Description  Returns the transcript in order, the pending flag and a preview of the loaded document.
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /sessions/{id} [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	session, ok := sessionStore().GetSession(r.Context(), id)
	if !ok {
		WriteErrorResponse(w, http.StatusNotFound, id, "Session not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(session))
}

// DeleteSessionHandler godoc
// @Summary      Close a session
// @Description  Drops the document and the transcript. A question still in flight is discarded.
// @Tags         Sessions
// @Param        id   path      string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /sessions/{id} [delete]
func DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	if !sessionStore().DeleteSession(r.Context(), id) {
		WriteErrorResponse(w, http.StatusNotFound, id, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostDocumentHandler godoc
// @Summary      Upload the session document
// @Description  Replaces the session document with the uploaded file. On a decoding failure the session keeps running without a document.
// @Tags         Sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true  "Session ID"
// @Param        document  formData  file    true  "UTF-8 text, PDF, DOCX, ODT or RTF file"
// @Success      200  {object}  api.DocumentResponse
// @Failure      400  {object}  api.JobResponse  "Not a multipart upload or no document field"
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Failure      409  {object}  api.JobResponse  "A question is in flight"
// @Failure      422  {object}  api.JobResponse  "Upload could not be read or decoded"
// @Router       /sessions/{id}/document [post]
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		return
	}
	ctx := r.Context()
	log := logRH.WithTrace(ctx)
	id := utils.GetChiURLParam(r, "id")

	session, ok := sessionStore().GetSession(ctx, id)
	if !ok {
		WriteErrorResponse(w, http.StatusNotFound, id, "Session not found")
		return
	}
	if session.Pending {
		WriteErrorResponse(w, http.StatusConflict, id, "A question is already being answered for this session")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Expected a multipart/form-data upload")
			return
		}
		// a truncated or oversized stream is a failed upload like any other
		log.Warn("Upload stream could not be read", "error", err)
		_, loadErr := chatService().LoadDocument(ctx, session, "", unreadableUpload{err: err})
		saveUpload(w, r, id, session, commonModels.Document{}, loadErr)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("Could not remove multipart temp files", "error", err)
		}
	}()

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, id, "Could not retrieve file")
		return
	}
	defer func(f io.Closer) {
		if err := f.Close(); err != nil {
			log.Warn("Couldn't close the upload reader", "error", err)
		}
	}(fileReader)

	doc, loadErr := chatService().LoadDocument(ctx, session, fileMetadata.Filename, fileReader)
	saveUpload(w, r, id, session, doc, loadErr)
}

// saveUpload stores the session after an upload attempt and reports the result.
// A failed load has already cleared the document, so the session is saved
// either way.
func saveUpload(w http.ResponseWriter, r *http.Request, id string, session *chatModel.Session, doc commonModels.Document, loadErr error) {
	if err := sessionStore().SaveSession(r.Context(), session); err != nil {
		writeSessionError(w, id, err)
		return
	}

	var le *document.LoadError
	if errors.As(loadErr, &le) {
		WriteErrorResponse(w, http.StatusUnprocessableEntity, id, le.Error())
		return
	} else if loadErr != nil {
		logRH.WithTrace(r.Context()).Error("Document load failed", "error", loadErr)
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Could not load document")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

// AskHandler godoc
// @Summary      Ask a question about the session document
// @Description  Marks the session pending and queues the question. Poll the status URL for the answer.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Session ID"
// @Param        request  body      api.AskRequest  true  "Question"
// @Success      202  {object}  api.InitJobResponse  "Question queued"
// @Failure      400  {object}  api.JobResponse      "Empty question"
// @Failure      404  {object}  api.JobResponse      "Session not found"
// @Failure      409  {object}  api.JobResponse      "A question is in flight"
// @Router       /sessions/{id}/ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		return
	}
	ctx := r.Context()
	id := utils.GetChiURLParam(r, "id")

	var requestData api.AskRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the ask handler reader", "error", err)
		}
	}(r.Body)
	err := json.NewDecoder(r.Body).Decode(&requestData)
	if err == nil {
		err = validate.Struct(requestData)
	}
	if err != nil {
		logRH.WithTrace(ctx).Warn("Bad ask request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
		return
	}

	if err := sessionStore().BeginAsk(ctx, id, requestData.Message); err != nil {
		writeSessionError(w, id, err)
		return
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		sessionId: id,
		message:   requestData.Message,
		traceId:   traceId(ctx),
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the state of an ask job and, once complete, the answer.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := GetJobStatus(idString, traceId(r.Context()))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}
