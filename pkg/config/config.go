package config

import (
	"fmt"
	"io"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a layered key-value store addressed by dotted keys
// ("garden.title", "garden.cookie.name"). Layers are merged at
// construction time (defaults < files < environment); runtime writes go
// to a separate overlay so the base view stays immutable.
//
// Lookups are case-insensitive on ASCII. The zero value is not usable;
// construct with New.
type Config struct {
	// base holds the merged construction-time layers. Frozen after New.
	base map[string]any

	mu      sync.RWMutex
	overlay map[string]any
	removed map[string]struct{}
}

// Option configures the Config during construction.
type Option func(*Config) error

// New creates a Config by merging the given option layers in order.
// Later options override earlier ones for the same key.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		base:    make(map[string]any),
		overlay: make(map[string]any),
		removed: make(map[string]struct{}),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

// Get returns the raw value for a dotted key and whether it exists.
// Overlay writes win over base layers; removed keys read as absent.
func (c *Config) Get(key string) (any, bool) {
	k := normalizeKey(key)
	if k == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, gone := c.removed[k]; gone {
		return nil, false
	}
	if v, ok := c.overlay[k]; ok {
		return v, true
	}
	if v, ok := c.base[k]; ok {
		return v, true
	}
	return nil, false
}

// Set writes a runtime value for a dotted key. It clears any prior
// Remove of the same key.
func (c *Config) Set(key string, value any) {
	k := normalizeKey(key)
	if k == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.removed, k)
	c.overlay[k] = value
}

// Remove masks a key so subsequent reads see it as absent, even when a
// base layer still carries it.
func (c *Config) Remove(key string) {
	k := normalizeKey(key)
	if k == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.overlay, k)
	c.removed[k] = struct{}{}
}

// String returns the value as a string, or def when the key is absent
// or holds a non-scalar.
func (c *Config) String(key, def string) string {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return def
	}
}

// Int returns the value as an int, or def on absence or mismatch.
func (c *Config) Int(key string, def int) int {
	return int(c.Int64(key, int64(def)))
}

// Int64 returns the value as an int64, or def on absence or mismatch.
func (c *Config) Int64(key string, def int64) int64 {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

// Float returns the value as a float64, or def on absence or mismatch.
func (c *Config) Float(key string, def float64) float64 {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return def
}

// Bool returns the value as a bool, or def on absence or mismatch.
// Strings accept the usual truthy spellings ("1", "t", "true", "on",
// "yes") case-insensitively; numbers are true when non-zero.
func (c *Config) Bool(key string, def bool) bool {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "t", "true", "on", "yes":
			return true
		case "0", "f", "false", "off", "no", "":
			return false
		}
	}
	return def
}

// Duration returns the value as a time.Duration, or def on absence or
// mismatch. Strings use Go duration syntax; bare numbers are seconds.
func (c *Config) Duration(key string, def time.Duration) time.Duration {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch d := v.(type) {
	case int:
		return time.Duration(d) * time.Second
	case int64:
		return time.Duration(d) * time.Second
	case float64:
		return time.Duration(d * float64(time.Second))
	case string:
		if parsed, err := time.ParseDuration(strings.TrimSpace(d)); err == nil {
			return parsed
		}
		if secs, err := strconv.ParseInt(strings.TrimSpace(d), 10, 64); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}

// Strings returns the value as a string slice. Lists convert
// element-wise; a scalar string splits on commas and newlines; other
// scalars become one-element slices. Absent keys return def.
func (c *Config) Strings(key string, def []string) []string {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == '\n' || r == '\r'
		})
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

// Sub returns the subtree under prefix as a map keyed by the remaining
// dotted path. The result is a copy; mutating it does not affect the
// Config.
func (c *Config) Sub(prefix string) map[string]any {
	p := normalizeKey(prefix)
	if p != "" {
		p += "."
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any)
	collect := func(src map[string]any) {
		for k, v := range src {
			if _, gone := c.removed[k]; gone {
				continue
			}
			if p == "" {
				out[k] = v
				continue
			}
			if rest, ok := strings.CutPrefix(k, p); ok && rest != "" {
				out[rest] = v
			}
		}
	}
	collect(c.base)
	collect(c.overlay)
	return out
}

// All returns the merged view of every visible key. Mainly useful for
// diagnostics and persistence.
func (c *Config) All() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.base)+len(c.overlay))
	maps.Copy(out, c.base)
	maps.Copy(out, c.overlay)
	for k := range c.removed {
		delete(out, k)
	}
	return out
}

// SaveTo writes the merged view as nested YAML, with map keys sorted
// for stable output.
func (c *Config) SaveTo(w io.Writer) error {
	tree := unflatten(c.All())

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(key), "."))
}

// flatten converts a nested map into dotted keys. Lists stay whole
// values; only string-keyed maps recurse.
func flatten(data map[string]any, prefix string, out map[string]any) {
	for key, value := range data {
		fullKey := normalizeKey(key)
		if prefix != "" {
			fullKey = prefix + "." + fullKey
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(v, fullKey, out)
		case map[any]any:
			converted := make(map[string]any, len(v))
			for mk, mv := range v {
				converted[fmt.Sprintf("%v", mk)] = mv
			}
			flatten(converted, fullKey, out)
		default:
			out[fullKey] = value
		}
	}
}

// unflatten rebuilds the nested tree from dotted keys. When a scalar
// and a subtree collide on the same path, the subtree wins.
func unflatten(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := tree
		for i, part := range parts {
			if i == len(parts)-1 {
				if _, isMap := node[part].(map[string]any); !isMap {
					node[part] = flat[key]
				}
				break
			}
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
	}
	return tree
}
