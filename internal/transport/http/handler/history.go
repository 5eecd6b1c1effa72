package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docchat/internal/model"
)

// DocumentLister reads recent document records.
type DocumentLister interface {
	ListRecent(limit int) ([]model.Document, error)
}

// QARecordLister reads the persisted audit trail of one document.
type QARecordLister interface {
	ListByDocumentID(documentID string) ([]model.QARecord, error)
}

// HistoryHandler serves read-only JSON views over uploaded documents and the
// question/answer records the persist worker has written for them.
type HistoryHandler struct {
	documents DocumentLister
	records   QARecordLister
}

func NewHistoryHandler(documents DocumentLister, records QARecordLister) *HistoryHandler {
	return &HistoryHandler{documents: documents, records: records}
}

// ListDocuments returns the most recently uploaded documents, newest first.
func (h *HistoryHandler) ListDocuments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	docs, err := h.documents.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list documents failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// DocumentHistory returns the recorded question/answer pairs for one
// document, oldest first.
func (h *HistoryHandler) DocumentHistory(c *gin.Context) {
	id := c.Param("id")
	records, err := h.records.ListByDocumentID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list history failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"document_id": id,
		"records":     records,
	})
}
