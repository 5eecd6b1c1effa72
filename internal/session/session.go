package session

import "docchat/internal/model"

// Session is the per-browser state: the currently loaded document and the
// conversation held against it. It is the only place the rendered
// conversation lives.
type Session struct {
	Filename     string          `json:"filename"`
	DocumentID   string          `json:"document_id"`
	Conversation []model.QAEntry `json:"conversation"`
}

// HasDocument reports whether a document has been uploaded in this session.
func (s *Session) HasDocument() bool {
	return s.Filename != "" && s.DocumentID != ""
}

// SetDocument loads a new document and drops any previous conversation.
func (s *Session) SetDocument(filename, documentID string) {
	s.Filename = filename
	s.DocumentID = documentID
	s.Conversation = []model.QAEntry{}
}

// Append adds one question/answer pair to the conversation.
func (s *Session) Append(question, answer string) {
	s.Conversation = append(s.Conversation, model.QAEntry{
		Question: question,
		Answer:   answer,
	})
}

// Reset clears the document and the conversation together.
func (s *Session) Reset() {
	s.Filename = ""
	s.DocumentID = ""
	s.Conversation = nil
}

// ClearConversation empties the history but keeps the loaded document.
func (s *Session) ClearConversation() {
	s.Conversation = []model.QAEntry{}
}
