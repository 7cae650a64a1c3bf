package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// PutFile uploads a multipart file. The MIME type is detected from
// magic bytes, never from the filename the browser sent.
func PutFile(ctx context.Context, s Store, fh *multipart.FileHeader, opts ...Option) (*FileInfo, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	mimeType := DetectMIME(fh)

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("uploads: failed to open file: %w", err)
	}
	defer f.Close()

	return s.Put(ctx, f, fh.Size, append(opts, WithContentType(mimeType))...)
}

// PutBytes uploads in-memory data.
func PutBytes(ctx context.Context, s Store, data []byte, opts ...Option) (*FileInfo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return s.Put(ctx, bytes.NewReader(data), int64(len(data)), opts...)
}

// PutFromURL downloads a file and uploads it, for avatar imports and
// similar flows. maxSize caps the download; zero uses
// DefaultMaxDownloadSize.
func PutFromURL(ctx context.Context, s Store, sourceURL string, maxSize int64, opts ...Option) (*FileInfo, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidURL
	}

	if maxSize == 0 {
		maxSize = DefaultMaxDownloadSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDownloadFailed, resp.StatusCode)
	}
	if resp.ContentLength > maxSize {
		return nil, ErrDownloadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrDownloadTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return s.Put(ctx, bytes.NewReader(data), int64(len(data)), opts...)
}
