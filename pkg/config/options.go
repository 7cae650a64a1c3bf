package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithDefaults seeds the base layer from a nested map. Typically the
// first option so later layers can override.
func WithDefaults(values map[string]any) Option {
	return func(c *Config) error {
		flatten(values, "", c.base)
		return nil
	}
}

// WithValues merges pre-flattened dotted keys into the base layer.
func WithValues(values map[string]any) Option {
	return func(c *Config) error {
		for k, v := range values {
			c.base[normalizeKey(k)] = v
		}
		return nil
	}
}

// WithYAMLFile loads a single YAML document from the OS filesystem.
// A missing file is not an error; sites often run on defaults alone.
func WithYAMLFile(filename string) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(filename)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("reading %q: %w", filename, err)
		}
		return mergeYAML(c, filename, data)
	}
}

// WithYAMLDir loads every .yaml/.yml file in an fs.FS, walking
// subdirectories, in lexical path order. Useful with embed.FS for
// shipping stock configuration.
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *Config) error {
		return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			ext := strings.ToLower(path.Ext(filePath))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("reading %q: %w", filePath, err)
			}
			return mergeYAML(c, filePath, data)
		})
	}
}

// WithEnv overrides keys from environment variables carrying the given
// prefix. PLAZA_GARDEN_TITLE becomes "garden.title" for prefix "PLAZA".
// Underscores in variable names map to key separators, so config keys
// that themselves contain underscores cannot be targeted this way.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return ErrEmptyPrefix
		}
		p := strings.ToUpper(strings.TrimSuffix(prefix, "_")) + "_"

		for _, kv := range os.Environ() {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || !strings.HasPrefix(name, p) {
				continue
			}
			key := strings.ReplaceAll(strings.TrimPrefix(name, p), "_", ".")
			if key = normalizeKey(key); key != "" {
				c.base[key] = value
			}
		}
		return nil
	}
}

func mergeYAML(c *Config, name string, data []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, name, err)
	}
	flatten(tree, "", c.base)
	return nil
}
