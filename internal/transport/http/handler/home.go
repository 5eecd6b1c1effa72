package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docchat/internal/app"
	"docchat/internal/index"
	"docchat/internal/model"
	"docchat/internal/session"
	"docchat/internal/transport/http/middleware"
)

const (
	maxPDFSize            = 10 << 20 // 10 MB
	defaultMaxQuestionLen = 500

	uploadTemplate = "upload.html"
	chatTemplate   = "chat.html"
)

// Action is the form submission kind, decoded once at the boundary.
type Action int

const (
	ActionNone Action = iota
	ActionUpload
	ActionAsk
	ActionReset
	ActionClear
)

// parseAction classifies a POST by its marker field. Markers are mutually
// exclusive in the rendered forms; the first match wins.
func parseAction(c *gin.Context) Action {
	switch {
	case c.PostForm("upload_file") != "" || hasFormFile(c, "file"):
		return ActionUpload
	case c.PostForm("ask_question") != "":
		return ActionAsk
	case c.PostForm("reset") != "":
		return ActionReset
	case c.PostForm("clear_chat") != "":
		return ActionClear
	default:
		return ActionNone
	}
}

func hasFormFile(c *gin.Context, field string) bool {
	_, err := c.FormFile(field)
	return err == nil
}

// DocumentService persists uploads and resolves document ids.
type DocumentService interface {
	SaveUpload(filename string, src io.Reader, size int64) (*model.Document, error)
	Get(id string) (*model.Document, error)
}

// IndexBuilder builds (or loads) the retrieval index for a document.
type IndexBuilder interface {
	GetOrBuild(ctx context.Context, doc *model.Document) (*index.Index, error)
}

// Answerer runs the question-answering pipeline.
type Answerer interface {
	Answer(ctx context.Context, doc *model.Document, question string) (string, error)
}

type HomeHandler struct {
	documents      DocumentService
	builder        IndexBuilder
	qa             Answerer
	sessions       session.Store
	maxQuestionLen int
}

func NewHomeHandler(documents DocumentService, builder IndexBuilder, qa Answerer, sessions session.Store, maxQuestionLen int) *HomeHandler {
	if maxQuestionLen <= 0 {
		maxQuestionLen = defaultMaxQuestionLen
	}
	return &HomeHandler{
		documents:      documents,
		builder:        builder,
		qa:             qa,
		sessions:       sessions,
		maxQuestionLen: maxQuestionLen,
	}
}

// Show renders the view for the current session state.
func (h *HomeHandler) Show(c *gin.Context) {
	sess := h.loadSession(c)
	h.renderCurrent(c, http.StatusOK, sess, "")
}

// Submit dispatches a form POST to the matching action handler.
func (h *HomeHandler) Submit(c *gin.Context) {
	sess := h.loadSession(c)

	switch parseAction(c) {
	case ActionUpload:
		h.handleUpload(c, sess)
	case ActionAsk:
		h.handleAsk(c, sess)
	case ActionReset:
		h.handleReset(c, sess)
	case ActionClear:
		h.handleClear(c, sess)
	default:
		h.renderCurrent(c, http.StatusOK, sess, "")
	}
}

func (h *HomeHandler) handleUpload(c *gin.Context, sess *session.Session) {
	file, err := c.FormFile("file")
	if err != nil {
		h.renderUpload(c, http.StatusOK, "Please choose a PDF file to upload.")
		return
	}
	if file.Size > maxPDFSize {
		h.renderUpload(c, http.StatusOK, "File too large (max 10MB).")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		h.renderUpload(c, http.StatusOK, "Only PDF files are allowed.")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.renderUpload(c, http.StatusInternalServerError, "Failed to read the uploaded file.")
		return
	}
	defer src.Close()

	doc, err := h.documents.SaveUpload(file.Filename, src, file.Size)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			h.renderUpload(c, http.StatusOK, "The file is not a readable PDF.")
		case errors.Is(err, app.ErrEmptyDocument):
			h.renderUpload(c, http.StatusOK, "The PDF contains no extractable text.")
		default:
			h.renderUpload(c, http.StatusInternalServerError, "Failed to store the uploaded file.")
		}
		return
	}

	// Build the index once, synchronously, before the chat view appears.
	if _, err := h.builder.GetOrBuild(c.Request.Context(), doc); err != nil {
		if errors.Is(err, app.ErrEmptyDocument) {
			h.renderUpload(c, http.StatusOK, "The PDF contains no extractable text.")
			return
		}
		h.renderUpload(c, http.StatusInternalServerError, "Failed to index the document: "+err.Error())
		return
	}

	sess.SetDocument(file.Filename, doc.ID)
	h.saveSession(c, sess)
	h.renderChat(c, http.StatusOK, sess, "")
}

func (h *HomeHandler) handleAsk(c *gin.Context, sess *session.Session) {
	doc, err := h.sessionDocument(sess)
	switch {
	case errors.Is(err, app.ErrNoDocument):
		// Do not touch the session; a fresh ask has nothing to mutate.
		h.renderUpload(c, http.StatusOK, "Please upload a document first.")
		return
	case errors.Is(err, app.ErrDocumentNotFound):
		h.renderUpload(c, http.StatusOK, "File missing. Please upload a document again.")
		return
	case err != nil:
		h.renderChat(c, http.StatusInternalServerError, sess, "Failed to load the document.")
		return
	}

	question := strings.TrimSpace(c.PostForm("question"))
	if question == "" {
		h.renderChat(c, http.StatusOK, sess, "Please enter a question.")
		return
	}
	if len([]rune(question)) > h.maxQuestionLen {
		h.renderChat(c, http.StatusOK, sess, "Question is too long (max 500 characters).")
		return
	}

	answer, err := h.qa.Answer(c.Request.Context(), doc, question)
	if err != nil {
		h.renderChat(c, http.StatusInternalServerError, sess, "Failed to answer the question: "+err.Error())
		return
	}

	sess.Append(question, answer)
	h.saveSession(c, sess)
	h.renderChat(c, http.StatusOK, sess, "")
}

func (h *HomeHandler) handleReset(c *gin.Context, sess *session.Session) {
	sess.Reset()
	h.saveSession(c, sess)
	h.renderUpload(c, http.StatusOK, "")
}

func (h *HomeHandler) handleClear(c *gin.Context, sess *session.Session) {
	if !sess.HasDocument() {
		h.renderUpload(c, http.StatusOK, "")
		return
	}
	sess.ClearConversation()
	h.saveSession(c, sess)
	h.renderChat(c, http.StatusOK, sess, "")
}

// sessionDocument resolves the session's document through the store, so a
// fresh session surfaces as ErrNoDocument and a stale reference as
// ErrDocumentNotFound.
func (h *HomeHandler) sessionDocument(sess *session.Session) (*model.Document, error) {
	if !sess.HasDocument() {
		return nil, app.ErrNoDocument
	}
	return h.documents.Get(sess.DocumentID)
}

func (h *HomeHandler) loadSession(c *gin.Context) *session.Session {
	sid := middleware.SessionID(c)
	sess, found, err := h.sessions.Get(c.Request.Context(), sid)
	if err != nil || !found {
		return &session.Session{}
	}
	return sess
}

func (h *HomeHandler) saveSession(c *gin.Context, sess *session.Session) {
	sid := middleware.SessionID(c)
	if err := h.sessions.Save(c.Request.Context(), sid, sess); err != nil {
		// The page still renders; the session just falls back to its last
		// persisted state on the next request.
		_ = c.Error(err)
	}
}

func (h *HomeHandler) renderCurrent(c *gin.Context, status int, sess *session.Session, errMsg string) {
	if sess.HasDocument() {
		h.renderChat(c, status, sess, errMsg)
		return
	}
	h.renderUpload(c, status, errMsg)
}

func (h *HomeHandler) renderUpload(c *gin.Context, status int, errMsg string) {
	c.HTML(status, uploadTemplate, gin.H{
		"Error": errMsg,
	})
}

func (h *HomeHandler) renderChat(c *gin.Context, status int, sess *session.Session, errMsg string) {
	c.HTML(status, chatTemplate, gin.H{
		"Filename":     sess.Filename,
		"Conversation": sess.Conversation,
		"Error":        errMsg,
	})
}
