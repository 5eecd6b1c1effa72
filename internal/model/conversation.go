package model

// QAEntry is one question/answer pair in a session's conversation.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
