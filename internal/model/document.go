package model

import "time"

// Document is an uploaded PDF. StoragePath points at the local copy of the
// bytes; SourceURL is set instead when the file is hosted remotely. Records
// are immutable after creation.
type Document struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	StoragePath string    `gorm:"size:512" json:"storage_path"`
	SourceURL   string    `gorm:"size:512" json:"source_url"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Remote reports whether the document bytes live behind an HTTP URL rather
// than on the local filesystem.
func (d *Document) Remote() bool {
	return d.SourceURL != ""
}
