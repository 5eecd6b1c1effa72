package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docchat/internal/model"
	"docchat/internal/pkg/pdfextract"
)

// DocumentRepo is the persistence surface the document service needs.
type DocumentRepo interface {
	Create(doc *model.Document) error
	GetByID(id string) (*model.Document, error)
}

// DocumentService owns uploaded documents: bytes on disk under the upload
// directory, metadata in the document store.
type DocumentService struct {
	repo      DocumentRepo
	uploadDir string
}

func NewDocumentService(repo DocumentRepo, uploadDir string) *DocumentService {
	return &DocumentService{
		repo:      repo,
		uploadDir: uploadDir,
	}
}

// SaveUpload validates and persists one uploaded PDF and returns its
// immutable record. The upload is rejected before anything touches disk when
// it does not parse as a PDF (ErrInvalidInput) or parses but carries no
// extractable text (ErrEmptyDocument). Every accepted upload gets a fresh id,
// so an existing index can never go stale under the same key.
func (s *DocumentService) SaveUpload(filename string, src io.Reader, size int64) (*model.Document, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return nil, ErrInvalidInput
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	text, err := pdfextract.ExtractText(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable pdf", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(s.uploadDir, id+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload file failed: %w", err)
	}
	if size <= 0 {
		size = int64(len(data))
	}

	doc := &model.Document{
		ID:          id,
		Name:        name,
		StoragePath: path,
		Size:        size,
	}
	if err := s.repo.Create(doc); err != nil {
		os.Remove(path)
		return nil, err
	}
	return doc, nil
}

// Get resolves a document id from a session; ErrDocumentNotFound when the
// store has no such record.
func (s *DocumentService) Get(id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrDocumentNotFound
	}
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}
