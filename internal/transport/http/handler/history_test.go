package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/model"
)

type fakeDocumentLister struct {
	docs      []model.Document
	err       error
	lastLimit int
}

func (f *fakeDocumentLister) ListRecent(limit int) ([]model.Document, error) {
	f.lastLimit = limit
	return f.docs, f.err
}

type fakeRecordLister struct {
	records []model.QARecord
	err     error
	lastID  string
}

func (f *fakeRecordLister) ListByDocumentID(documentID string) ([]model.QARecord, error) {
	f.lastID = documentID
	return f.records, f.err
}

func newHistoryRouter(docs *fakeDocumentLister, records *fakeRecordLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHistoryHandler(docs, records)
	router := gin.New()
	router.GET("/api/documents", h.ListDocuments)
	router.GET("/api/documents/:id/history", h.DocumentHistory)
	return router
}

func TestListDocuments(t *testing.T) {
	docs := &fakeDocumentLister{docs: []model.Document{
		{ID: "doc-2", Name: "later.pdf"},
		{ID: "doc-1", Name: "earlier.pdf"},
	}}
	router := newHistoryRouter(docs, &fakeRecordLister{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, docs.lastLimit, "default limit must apply")

	var body struct {
		Documents []model.Document `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Documents, 2)
	assert.Equal(t, "doc-2", body.Documents[0].ID)
}

func TestListDocumentsCustomLimit(t *testing.T) {
	docs := &fakeDocumentLister{}
	router := newHistoryRouter(docs, &fakeRecordLister{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, docs.lastLimit)
}

func TestListDocumentsBadLimit(t *testing.T) {
	router := newHistoryRouter(&fakeDocumentLister{}, &fakeRecordLister{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents?limit=many", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHistory(t *testing.T) {
	records := &fakeRecordLister{records: []model.QARecord{
		{ID: 1, DocumentID: "doc-1", Question: "q1", Answer: "a1"},
		{ID: 2, DocumentID: "doc-1", Question: "q2", Answer: "a2"},
	}}
	router := newHistoryRouter(&fakeDocumentLister{}, records)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents/doc-1/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doc-1", records.lastID)

	var body struct {
		DocumentID string           `json:"document_id"`
		Records    []model.QARecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "doc-1", body.DocumentID)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "q1", body.Records[0].Question)
}

func TestDocumentHistoryListFailure(t *testing.T) {
	router := newHistoryRouter(&fakeDocumentLister{}, &fakeRecordLister{err: assert.AnError})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/documents/doc-1/history", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
