package uploads

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	MIMEOctetStream = "application/octet-stream"

	// http.DetectContentType reads at most this many bytes.
	mimeDetectionBytes = 512
)

var imageTypes = map[string]struct{}{
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/webp": {},
	"image/svg+xml": {}, "image/bmp": {}, "image/tiff": {}, "image/x-icon": {},
	"image/avif": {},
}

var documentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.ms-powerpoint":                                             {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"text/plain": {}, "text/csv": {}, "application/rtf": {},
}

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg", "image/png": ".png", "image/gif": ".gif",
	"image/webp": ".webp", "image/svg+xml": ".svg", "image/bmp": ".bmp",
	"image/tiff": ".tiff", "image/x-icon": ".ico", "image/avif": ".avif",

	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.ms-powerpoint":                                             ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"text/plain": ".txt", "text/csv": ".csv", "text/html": ".html",
	"application/rtf": ".rtf",

	"application/json": ".json", "application/xml": ".xml",

	"video/mp4": ".mp4", "video/webm": ".webm", "video/quicktime": ".mov",
	"audio/mpeg": ".mp3", "audio/wav": ".wav", "audio/ogg": ".ogg",
	"audio/aac": ".aac", "audio/flac": ".flac", "audio/mp4": ".m4a",

	"application/zip": ".zip", "application/gzip": ".gz",
	"application/x-tar": ".tar", "application/x-7z-compressed": ".7z",
}

// DetectMIME sniffs the MIME type of a multipart file from its magic
// bytes. The filename extension is never trusted.
func DetectMIME(fh *multipart.FileHeader) string {
	if fh == nil {
		return MIMEOctetStream
	}
	f, err := fh.Open()
	if err != nil {
		return MIMEOctetStream
	}
	defer f.Close()
	return detectMIMEFromReader(f)
}

// ExtFromMIME returns the preferred extension for a MIME type, or ""
// when unknown.
func ExtFromMIME(mimeType string) string {
	return mimeExtensions[normalizeMIME(mimeType)]
}

// IsImage reports whether the file's magic bytes identify an image.
func IsImage(fh *multipart.FileHeader) bool {
	return mimeIn(imageTypes, DetectMIME(fh))
}

// IsDocument reports whether the file's magic bytes identify a
// document type attachments accept.
func IsDocument(fh *multipart.FileHeader) bool {
	return mimeIn(documentTypes, DetectMIME(fh))
}

func detectMIMEFromReader(r io.Reader) string {
	buf := make([]byte, mimeDetectionBytes)
	n, err := r.Read(buf)
	if err != nil && n == 0 {
		return MIMEOctetStream
	}
	return http.DetectContentType(buf[:n])
}

// detectMIMEWithReader sniffs the type and hands back a seekable
// reader, since the AWS SDK needs io.ReadSeeker for payload hashing.
// Non-seekable input gets buffered.
func detectMIMEWithReader(r io.Reader) (string, io.ReadSeeker) {
	if rs, ok := r.(io.ReadSeeker); ok {
		buf := make([]byte, mimeDetectionBytes)
		n, _ := rs.Read(buf)
		_, _ = rs.Seek(0, io.SeekStart)
		if n > 0 {
			return http.DetectContentType(buf[:n]), rs
		}
		return MIMEOctetStream, rs
	}

	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return MIMEOctetStream, bytes.NewReader(nil)
	}
	return http.DetectContentType(data), bytes.NewReader(data)
}

// normalizeMIME drops parameters like charset and lowercases the type.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

func mimeIn(set map[string]struct{}, mimeType string) bool {
	_, ok := set[normalizeMIME(mimeType)]
	return ok
}

// matchesMIME matches a type against patterns, supporting "image/*"
// wildcards.
func matchesMIME(mimeType string, allowed []string) bool {
	mimeType = normalizeMIME(mimeType)
	for _, pattern := range allowed {
		pattern = strings.TrimSpace(strings.ToLower(pattern))
		if mimeType == pattern {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
		}
	}
	return false
}
