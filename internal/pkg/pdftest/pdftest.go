// Package pdftest builds tiny single-page PDF documents for tests. The
// cross-reference offsets are computed from the buffer as it grows, so the
// output is always a structurally valid PDF.
package pdftest

import (
	"bytes"
	"fmt"
)

// Bytes returns a one-page PDF whose only text run is text. text must not
// contain parentheses or backslashes. An empty text yields a page without any
// extractable text.
func Bytes(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	content := "BT ET"
	if text != "" {
		content = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
