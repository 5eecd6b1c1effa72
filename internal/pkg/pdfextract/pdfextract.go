package pdfextract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads all of r and extracts the document's plain text in one
// pass. Bytes that do not parse as a PDF are an error; a PDF that parses but
// carries no text comes back as an empty string without error.
func ExtractText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf bytes failed: %w", err)
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf failed: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	return string(out), nil
}

// ExtractPages opens the PDF at path and returns one text unit per page.
// Pages without extractable text come back as empty strings so page numbering
// stays aligned with the source document.
func ExtractPages(path string) ([]string, error) {
	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	total := pdfReader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
