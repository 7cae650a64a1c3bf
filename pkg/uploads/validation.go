package uploads

import "fmt"

// FileValidationError reports why an upload was rejected in a form the
// API can surface per field.
type FileValidationError struct {
	Details map[string]any
	Field   string
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Message
}

// Error codes carried by FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeFileTooSmall = "file_too_small"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// ValidationRule checks an upload before it reaches storage. The MIME
// type is pre-detected from magic bytes.
type ValidationRule interface {
	Validate(size int64, mimeType string) error
}

// ValidateUpload runs the rules and returns the first failure.
func ValidateUpload(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

type maxSizeRule struct {
	maxBytes int64
}

// MaxSize rejects files larger than the limit.
func MaxSize(bytes int64) ValidationRule {
	return &maxSizeRule{maxBytes: bytes}
}

func (r *maxSizeRule) Validate(size int64, _ string) error {
	if size > r.maxBytes {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeFileTooLarge,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, r.maxBytes),
			Details: map[string]any{"limit": r.maxBytes, "got": size},
		}
	}
	return nil
}

type minSizeRule struct {
	minBytes int64
}

// MinSize rejects files smaller than the limit.
func MinSize(bytes int64) ValidationRule {
	return &minSizeRule{minBytes: bytes}
}

func (r *minSizeRule) Validate(size int64, _ string) error {
	if size < r.minBytes {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeFileTooSmall,
			Message: fmt.Sprintf("file size %d is below minimum of %d bytes", size, r.minBytes),
			Details: map[string]any{"minimum": r.minBytes, "got": size},
		}
	}
	return nil
}

type notEmptyRule struct{}

// NotEmpty rejects zero-byte files.
func NotEmpty() ValidationRule {
	return notEmptyRule{}
}

func (notEmptyRule) Validate(size int64, _ string) error {
	if size == 0 {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeEmptyFile,
			Message: "file is empty",
			Details: map[string]any{},
		}
	}
	return nil
}

type allowedTypesRule struct {
	patterns []string
}

// AllowedTypes accepts only files matching the given MIME patterns.
// Wildcards like "image/*" work.
func AllowedTypes(patterns ...string) ValidationRule {
	return &allowedTypesRule{patterns: patterns}
}

func (r *allowedTypesRule) Validate(_ int64, mimeType string) error {
	if !matchesMIME(mimeType, r.patterns) {
		return &FileValidationError{
			Field:   "file",
			Code:    ErrCodeInvalidMIME,
			Message: fmt.Sprintf("file type %q is not allowed", mimeType),
			Details: map[string]any{"type": mimeType, "allowed": r.patterns},
		}
	}
	return nil
}

// ImageOnly accepts only images. Avatars and banners use it.
func ImageOnly() ValidationRule {
	return AllowedTypes("image/*")
}

// DocumentsOnly accepts the document types attachments allow.
func DocumentsOnly() ValidationRule {
	return AllowedTypes(
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain",
		"text/csv",
		"application/rtf",
	)
}
