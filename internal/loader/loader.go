package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"docchat/internal/app"
	"docchat/internal/model"
	"docchat/internal/pkg/pdfextract"
)

// Resolver turns a document record into a local PDF file. Remote documents
// are fetched over HTTP first; a failed fetch is fatal for the request.
type Resolver struct {
	httpClient *http.Client
	retryOpts  []retry.Option
}

func NewResolver(timeout time.Duration, attempts uint, delay time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if attempts == 0 {
		attempts = 1
	}
	return &Resolver{
		httpClient: &http.Client{Timeout: timeout},
		retryOpts: []retry.Option{
			retry.Attempts(attempts),
			retry.Delay(delay),
			retry.LastErrorOnly(true),
		},
	}
}

// Resolve returns a local path holding the document bytes. cleanup removes
// any temp file created for a remote fetch and is safe to call always.
func (r *Resolver) Resolve(ctx context.Context, doc *model.Document) (path string, cleanup func(), err error) {
	noop := func() {}
	if !doc.Remote() {
		return doc.StoragePath, noop, nil
	}
	if !strings.HasPrefix(doc.SourceURL, "http") {
		return "", noop, fmt.Errorf("unsupported document source %q", doc.SourceURL)
	}

	body, err := r.fetch(ctx, doc.SourceURL)
	if err != nil {
		return "", noop, err
	}

	tmp, err := os.CreateTemp("", "docchat-*.pdf")
	if err != nil {
		return "", noop, fmt.Errorf("create temp file failed: %w", err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, fmt.Errorf("write temp file failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", noop, fmt.Errorf("close temp file failed: %w", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	opts := append([]retry.Option{retry.Context(ctx)}, r.retryOpts...)
	return retry.DoWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("build download request failed: %w", err))
		}
		resp, err := r.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("download document failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("download status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 300 {
			return nil, retry.Unrecoverable(fmt.Errorf("download status %d", resp.StatusCode))
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read download body failed: %w", err)
		}
		return body, nil
	}, opts...)
}

// Loader resolves a document and extracts its text page by page.
type Loader struct {
	resolver *Resolver
}

func NewLoader(resolver *Resolver) *Loader {
	return &Loader{resolver: resolver}
}

// Load returns the document's page texts. Fails when the PDF cannot be
// parsed, and with app.ErrEmptyDocument when no page carries text.
func (l *Loader) Load(ctx context.Context, doc *model.Document) ([]string, error) {
	path, cleanup, err := l.resolver.Resolve(ctx, doc)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pages, err := pdfextract.ExtractPages(path)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text failed: %w", err)
	}

	empty := true
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, fmt.Errorf("document %s: %w", doc.ID, app.ErrEmptyDocument)
	}
	return pages, nil
}
