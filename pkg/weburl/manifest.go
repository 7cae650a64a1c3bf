package weburl

import (
	"encoding/json"
	"fmt"
	"io"
)

// Manifest maps logical asset paths to their served, cache-busted
// locations. plazactl writes one per build; the daemon installs it as
// the builder's asset resolver.
type Manifest struct {
	// Version fingerprints the whole asset set.
	Version string `json:"version"`
	// Assets maps "js/app.js" to "js/app.js?v=ab12cd34" or a full CDN
	// URL.
	Assets map[string]string `json:"assets"`
}

// LoadManifest decodes a manifest written by plazactl.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("weburl: decode manifest: %w", err)
	}
	return &m, nil
}

// Resolver adapts the manifest for WithAssetResolver. Paths absent
// from the manifest fall through to the asset root unchanged.
func (m *Manifest) Resolver() AssetResolver {
	return func(path string) (string, bool) {
		resolved, ok := m.Assets[path]
		return resolved, ok
	}
}
