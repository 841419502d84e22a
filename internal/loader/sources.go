package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// maxDocumentSize caps how much a single read may pull in.
const maxDocumentSize = 16 << 20

func readFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schemaform loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func readFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("schemaform loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("schemaform loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(files, name)
}

func readStream(ctx context.Context, r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("schemaform loader: stdin is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("schemaform loader: input exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func readHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("schemaform loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("schemaform loader: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/schema+json, application/json, application/yaml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schemaform loader: unexpected status " + resp.Status)
	}
	return readStream(ctx, resp.Body)
}
