// Package uploads stores user files (avatars, attachments, theme
// assets) on S3-compatible object storage.
//
// # Setup
//
//	store, err := uploads.New(uploads.FromConfig(cfg))
//	if err != nil {
//		return err
//	}
//
// Configuration lives under garden.upload.* (bucket, accessKey,
// secretKey, endpoint, pathStyle for MinIO, publicUrl for a CDN).
//
// # Uploading
//
//	info, err := uploads.PutFile(ctx, store, fileHeader,
//		uploads.WithPrefix("avatars"),
//		uploads.WithOwner(user.ID),
//		uploads.WithValidation(uploads.ImageOnly(), uploads.MaxSize(5<<20)),
//		uploads.WithACL(uploads.ACLPublicRead),
//	)
//
// Generated keys look like avatars/241/01JF8QZ3W7....png: the prefix
// groups by kind, the owner segment groups by user, and the ULID
// makes the name unique and time-sortable. MIME types come from magic
// bytes; the browser filename is never trusted.
//
// # Serving
//
//	src, err := store.URL(ctx, info.Key, uploads.WithPublic())
//
// Private files get signed URLs (15 minutes by default):
//
//	href, err := store.URL(ctx, key,
//		uploads.WithDownload("minutes.pdf"),
//		uploads.WithExpiry(time.Hour),
//	)
package uploads
