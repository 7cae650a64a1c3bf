package uploads

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("uploads: invalid configuration")
	ErrEmptyFile     = errors.New("uploads: file is empty")

	ErrNotFound      = errors.New("uploads: file not found")
	ErrAccessDenied  = errors.New("uploads: access denied")
	ErrUploadFailed  = errors.New("uploads: upload failed")
	ErrDeleteFailed  = errors.New("uploads: delete failed")
	ErrPresignFailed = errors.New("uploads: presign failed")

	ErrInvalidURL       = errors.New("uploads: invalid URL")
	ErrDownloadFailed   = errors.New("uploads: failed to download from URL")
	ErrDownloadTooLarge = errors.New("uploads: download exceeds size limit")
)

// wrapS3Error maps S3 failures onto sentinel errors. The original
// error is flattened with %v so callers match sentinels with
// errors.Is, never AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
