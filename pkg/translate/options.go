package translate

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plazakit/plaza/pkg/locale"
)

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.defaultLang = lang
		return nil
	}
}

// WithDefinitions registers message definitions for a language. Nested
// maps are flattened into dotted codes. Later options override earlier
// ones for the same code.
func WithDefinitions(lang string, definitions map[string]any) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if len(definitions) == 0 {
			return nil
		}

		for code, msg := range flattenDefinitions(definitions, "") {
			c.messages[messageKey(lang, code)] = msg
		}

		return nil
	}
}

// WithPluralRule registers a custom plural rule for a language.
func WithPluralRule(lang string, rule locale.PluralRule) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		c.pluralRules[lang] = rule
		return nil
	}
}

// WithMissingHandler sets a handler called when a code has no
// definition in any fallback language. Useful for logging untranslated
// codes in development.
func WithMissingHandler(handler func(lang, code string)) Option {
	return func(c *Catalog) error {
		c.missingHandler = handler
		return nil
	}
}

// WithYAMLDir loads definition files from an fs.FS. The root must
// contain language directories directly; every .yaml/.yml file inside a
// language directory merges into that language.
//
// Example structure:
//
//	en/site.yaml
//	en/moderation.yml
//	fr/site.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return loadDir(c, fsys, ".yaml", func(data []byte, v any) error {
			return yaml.Unmarshal(data, v)
		})
	}
}

// WithJSONDir loads definition files from an fs.FS, same layout as
// WithYAMLDir but with .json files.
func WithJSONDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return loadDir(c, fsys, ".json", func(data []byte, v any) error {
			return json.Unmarshal(data, v)
		})
	}
}

func loadDir(c *Catalog, fsys fs.FS, ext string, unmarshal func([]byte, any) error) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fileExt := strings.ToLower(path.Ext(filePath))

		var matches bool
		if ext == ".yaml" {
			matches = fileExt == ".yaml" || fileExt == ".yml"
		} else {
			matches = fileExt == ext
		}
		if !matches {
			return nil
		}

		dir := path.Dir(filePath)
		if dir == "." || dir == "" {
			return fmt.Errorf("%w: file %q must be inside a language directory", ErrInvalidFile, filePath)
		}
		lang := path.Base(dir)

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var definitions map[string]any
		if err := unmarshal(data, &definitions); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		for code, msg := range flattenDefinitions(definitions, "") {
			c.messages[messageKey(lang, code)] = msg
		}

		return nil
	})
}
