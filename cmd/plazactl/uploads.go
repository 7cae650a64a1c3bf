package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plazakit/plaza/pkg/uploads"
)

var (
	uploadPrefix string
	uploadOwner  int64
	uploadPublic bool
)

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Manage files in the platform's upload storage",
}

var uploadsPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Upload a file and print its key and URL",
	Long: `Stores a local file in the S3-compatible bucket from the
garden.upload.* configuration block. Theme assets (banner backgrounds,
logos) go up with --public --prefix theme, so the daemon's asset
resolver can serve them at uploads/<key> paths.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openUploadStore()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil {
			return err
		}

		opts := []uploads.Option{uploads.WithPrefix(uploadPrefix)}
		if uploadOwner > 0 {
			opts = append(opts, uploads.WithOwner(uploadOwner))
		}
		if uploadPublic {
			opts = append(opts, uploads.WithACL(uploads.ACLPublicRead))
		}

		out.Step("uploading %s (%d bytes)", filepath.Base(args[0]), stat.Size())
		info, err := store.Put(cmd.Context(), f, stat.Size(), opts...)
		if err != nil {
			return err
		}

		urlOpts := []uploads.URLOption{}
		if uploadPublic {
			urlOpts = append(urlOpts, uploads.WithPublic())
		}
		fileURL, err := store.URL(cmd.Context(), info.Key, urlOpts...)
		if err != nil {
			return err
		}

		out.Success("stored as %s (%s)", info.Key, info.ContentType)
		out.Info("%s", fileURL)
		return nil
	},
}

var uploadsRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete a stored file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openUploadStore()
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		out.Success("deleted %s", args[0])
		return nil
	},
}

func init() {
	uploadsPutCmd.Flags().StringVar(&uploadPrefix, "prefix", "theme", "key prefix inside the bucket")
	uploadsPutCmd.Flags().Int64Var(&uploadOwner, "owner", 0, "owning user id segment")
	uploadsPutCmd.Flags().BoolVar(&uploadPublic, "public", false, "store with public-read access")
	uploadsCmd.AddCommand(uploadsPutCmd, uploadsRmCmd)
	rootCmd.AddCommand(uploadsCmd)
}

func openUploadStore() (uploads.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ucfg := uploads.FromConfig(cfg)
	if ucfg.Bucket == "" {
		return nil, fmt.Errorf("garden.upload.bucket is not configured")
	}
	store, err := uploads.New(ucfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}
