package uploads

import (
	"context"
	"io"

	"github.com/plazakit/plaza/pkg/config"
)

// Store is the upload storage surface: avatars, attachments, and theme
// assets all go through it.
type Store interface {
	// Put uploads data from a reader. Size feeds the content-length
	// header; options control key, prefix, owner, ACL, and type.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves a file. The caller closes the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, key string) error

	// URL generates an access URL: signed for private files, public
	// otherwise.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible storage settings.
type Config struct {
	// Bucket, AccessKey, and SecretKey are required.
	Bucket    string
	AccessKey string
	SecretKey string

	// Endpoint points at MinIO or another S3-compatible service.
	// PathStyle must be set for MinIO.
	Endpoint  string
	PathStyle bool

	Region string

	// PublicURL is a CDN prefix for public files. When set, public
	// URLs use it instead of the bucket URL.
	PublicURL string

	// DefaultACL applies to uploads that do not override it.
	DefaultACL ACL

	// MaxDownloadSize caps PutFromURL downloads in bytes.
	MaxDownloadSize int64
}

// FromConfig reads the garden.upload.* block of the site configuration.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Bucket:          cfg.String("garden.upload.bucket", ""),
		AccessKey:       cfg.String("garden.upload.accessKey", ""),
		SecretKey:       cfg.String("garden.upload.secretKey", ""),
		Endpoint:        cfg.String("garden.upload.endpoint", ""),
		PathStyle:       cfg.Bool("garden.upload.pathStyle", false),
		Region:          cfg.String("garden.upload.region", ""),
		PublicURL:       cfg.String("garden.upload.publicUrl", ""),
		DefaultACL:      ACL(cfg.String("garden.upload.acl", "")),
		MaxDownloadSize: cfg.Int64("garden.upload.maxDownloadSize", 0),
	}
}

// FileInfo describes an uploaded file.
type FileInfo struct {
	Key         string
	ContentType string
	ACL         ACL
	Size        int64
}

// ACL is the access level of a stored file.
type ACL string

const (
	// ACLPrivate restricts access to signed URLs.
	ACLPrivate ACL = "private"

	// ACLPublicRead allows unauthenticated reads.
	ACLPublicRead ACL = "public-read"
)

const (
	DefaultRegion          = "us-east-1"
	DefaultMaxDownloadSize = 50 << 20
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.DefaultACL == "" {
		c.DefaultACL = ACLPrivate
	}
	if c.MaxDownloadSize == 0 {
		c.MaxDownloadSize = DefaultMaxDownloadSize
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
