package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/plazakit/plaza/pkg/id"
)

// S3Store implements Store on S3-compatible object storage.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	cfg       Config
}

var _ Store = (*S3Store)(nil)

// New creates an S3Store. The config must carry bucket and credentials;
// everything else has defaults.
func New(cfg Config) (*S3Store, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	client := s3.New(s3.Options{}, opts...)

	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// Put uploads data from a reader.
func (s *S3Store) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := &putOptions{acl: s.cfg.DefaultACL}
	for _, opt := range opts {
		opt(o)
	}

	var contentType string
	var body io.ReadSeeker
	if o.contentType != "" {
		contentType = o.contentType
		if rs, ok := r.(io.ReadSeeker); ok {
			body = rs
		} else {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("uploads: failed to read input: %w", err)
			}
			body = bytes.NewReader(data)
		}
	} else {
		contentType, body = detectMIMEWithReader(r)
	}

	if err := ValidateUpload(size, contentType, o.rules...); err != nil {
		return nil, err
	}

	key := o.key
	if key == "" {
		key = buildKey(o, contentType)
	}

	acl := types.ObjectCannedACLPrivate
	if o.acl == ACLPublicRead {
		acl = types.ObjectCannedACLPublicRead
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           acl,
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{
		Key:         key,
		Size:        size,
		ContentType: contentType,
		ACL:         o.acl,
	}, nil
}

// Get retrieves a file.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}
	return out.Body, nil
}

// Delete removes a file.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

// Head returns file metadata without downloading the body.
func (s *S3Store) Head(ctx context.Context, key string) (*FileInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}

	info := &FileInfo{Key: key, ACL: s.cfg.DefaultACL}
	if out.ContentType != nil {
		info.ContentType = *out.ContentType
	}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	return info, nil
}

// Copy duplicates a file within the bucket.
func (s *S3Store) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.cfg.Bucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(s.cfg.Bucket + "/" + srcKey),
	})
	if err != nil {
		return wrapS3Error(err, ErrUploadFailed)
	}
	return nil
}

// URL generates an access URL. Signed by default; WithPublic switches
// to the unsigned public form.
func (s *S3Store) URL(ctx context.Context, key string, opts ...URLOption) (string, error) {
	o := &urlOptions{expiry: DefaultURLExpiry}
	for _, opt := range opts {
		opt(o)
	}

	if o.forcePublic {
		return s.publicURL(key), nil
	}
	return s.signedURL(ctx, key, o)
}

// buildKey shapes generated keys as {prefix}/{owner}/{ulid}.{ext}.
func buildKey(o *putOptions, contentType string) string {
	var parts []string
	if o.prefix != "" {
		parts = append(parts, sanitizeSegment(o.prefix))
	}
	if owner := o.ownerSegment(); owner != "" {
		parts = append(parts, owner)
	}

	ext := ExtFromMIME(contentType)
	if ext == "" {
		ext = ".bin"
	}
	parts = append(parts, id.NewULID()+ext)

	return strings.Join(parts, "/")
}

func (s *S3Store) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/")
		if s.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", endpoint, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func (s *S3Store) signedURL(ctx context.Context, key string, opts *urlOptions) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if opts.downloadName != "" {
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", opts.downloadName))
	}

	result, err := s.presigner.PresignGetObject(ctx, input, func(po *s3.PresignOptions) {
		po.Expires = opts.expiry
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return result.URL, nil
}

var unsafeSegmentChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeSegment strips path traversal and unsafe characters so user
// input never shapes object keys directly.
func sanitizeSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = unsafeSegmentChars.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}
