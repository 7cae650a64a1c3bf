// Package config provides layered, dotted-key configuration access for
// the platform.
//
// Configuration is addressed by dotted keys such as "garden.title" or
// "garden.cookie.name". Layers merge at construction time (defaults,
// then YAML files, then environment overrides) and runtime writes land
// in a separate overlay, keeping the base view immutable and the store
// safe for concurrent use.
//
// # Basic Usage
//
//	cfg, err := config.New(
//		config.WithDefaults(map[string]any{
//			"garden": map[string]any{
//				"title":   "Community",
//				"webroot": "/",
//			},
//		}),
//		config.WithYAMLFile("conf/site.yaml"),
//		config.WithEnv("PLAZA"),
//	)
//
//	title := cfg.String("garden.title", "Community")
//	perPage := cfg.Int("discussions.perpage", 30)
//
// Key lookup is case-insensitive: "Garden.Title" and "garden.title"
// address the same value.
//
// # Runtime Writes
//
// Set writes to an overlay that shadows the base layers; Remove masks a
// key entirely:
//
//	cfg.Set("garden.maintenance", true)
//	cfg.Remove("garden.externalurlformat")
//
// SaveTo persists the merged view as nested YAML:
//
//	f, _ := os.Create("conf/site.yaml")
//	defer f.Close()
//	err := cfg.SaveTo(f)
//
// # Typed Getters
//
// Every getter takes a default returned on absence or type mismatch:
// String, Int, Int64, Float, Bool, Duration, Strings. Strings splits
// scalar values on commas and newlines, which keeps list-ish settings
// like trusted domains editable as plain text.
//
// # Structured Sections
//
// Infrastructure config (database, redis, server) uses `env`-tagged
// structs populated with Bind (caarlos0/env), matching how the rest of
// the codebase declares such settings.
package config
