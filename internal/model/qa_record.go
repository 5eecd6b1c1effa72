package model

import "time"

// QARecord is the durable audit copy of an answered question. It is written
// asynchronously by the persist worker; the session conversation stays the
// source of truth for rendering.
type QARecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID string    `gorm:"size:36;not null;index" json:"document_id"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}
