package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plazakit/plaza/pkg/weburl"
)

var manifestOut string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Static asset tooling",
}

var assetsManifestCmd = &cobra.Command{
	Use:   "manifest <dir>",
	Short: "Hash static assets into a cache-busting manifest",
	Long: `Walks the asset directory, content-hashes every file, and writes a
manifest mapping each path to its versioned URL. The daemon installs
the manifest as the site builder's asset resolver, so asset URLs change
exactly when their content does.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildManifest(args[0], manifestOut)
	},
}

func init() {
	assetsManifestCmd.Flags().StringVarP(&manifestOut, "out", "o", "manifest.json", "manifest output path")
	assetsCmd.AddCommand(assetsManifestCmd)
	rootCmd.AddCommand(assetsCmd)
}

func buildManifest(dir, outPath string) error {
	out.Title("plaza asset manifest")

	manifest := &weburl.Manifest{Assets: map[string]string{}}
	total := sha256.New()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		sum, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("hash %s: %w", rel, err)
		}
		manifest.Assets[rel] = rel + "?v=" + sum
		out.Verbose("%s %s", sum, rel)
		return nil
	})
	if err != nil {
		return err
	}
	if len(manifest.Assets) == 0 {
		return fmt.Errorf("no assets found under %s", dir)
	}

	// Fingerprint the whole set in path order so the version is stable
	// across filesystems.
	paths := make([]string, 0, len(manifest.Assets))
	for p := range manifest.Assets {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		io.WriteString(total, p)
		io.WriteString(total, manifest.Assets[p])
	}
	manifest.Version = hex.EncodeToString(total.Sum(nil))[:8]

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return err
	}

	out.Success("%d assets, version %s, written to %s", len(manifest.Assets), manifest.Version, outPath)
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:8], nil
}
