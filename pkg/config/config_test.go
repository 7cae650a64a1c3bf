package config_test

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/plazakit/plaza/pkg/config"
)

func newTestConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()
	cfg, err := config.New(opts...)
	require.NoError(t, err)
	return cfg
}

func TestGet(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, config.WithDefaults(map[string]any{
		"garden": map[string]any{
			"title": "Community",
			"cookie": map[string]any{
				"name": "plaza",
			},
		},
	}))

	tests := []struct {
		name     string
		key      string
		expected any
		found    bool
	}{
		{name: "nested key", key: "garden.cookie.name", expected: "plaza", found: true},
		{name: "case insensitive", key: "Garden.Title", expected: "Community", found: true},
		{name: "missing key", key: "garden.locale", expected: nil, found: false},
		{name: "empty key", key: "", expected: nil, found: false},
		{name: "partial path is not a value", key: "garden.cookie", expected: nil, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := cfg.Get(tt.key)
			require.Equal(t, tt.found, ok)
			require.Equal(t, tt.expected, v)
		})
	}
}

func TestLayerPrecedence(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t,
		config.WithDefaults(map[string]any{"garden": map[string]any{"title": "Default", "webroot": "/"}}),
		config.WithValues(map[string]any{"garden.title": "From file"}),
	)

	require.Equal(t, "From file", cfg.String("garden.title", ""))
	require.Equal(t, "/", cfg.String("garden.webroot", ""))

	cfg.Set("garden.title", "Runtime")
	require.Equal(t, "Runtime", cfg.String("garden.title", ""))

	cfg.Remove("garden.title")
	_, ok := cfg.Get("garden.title")
	require.False(t, ok, "removed key must read as absent even with a base value")

	cfg.Set("garden.title", "Back")
	require.Equal(t, "Back", cfg.String("garden.title", ""), "Set clears a prior Remove")
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, config.WithValues(map[string]any{
		"site.perpage":    30,
		"site.ratio":      0.5,
		"site.enabled":    "on",
		"site.disabled":   false,
		"site.timeout":    "90s",
		"site.gcinterval": 300,
		"site.domains":    "example.com, *.trusted.test\nother.org",
		"site.tags":       []any{"a", "b"},
		"site.title":      "Plaza",
	}))

	require.Equal(t, 30, cfg.Int("site.perpage", 0))
	require.Equal(t, int64(30), cfg.Int64("site.perpage", 0))
	require.InEpsilon(t, 0.5, cfg.Float("site.ratio", 0), 1e-9)
	require.True(t, cfg.Bool("site.enabled", false))
	require.False(t, cfg.Bool("site.disabled", true))
	require.Equal(t, 90*time.Second, cfg.Duration("site.timeout", 0))
	require.Equal(t, 5*time.Minute, cfg.Duration("site.gcinterval", 0), "bare numbers are seconds")
	require.Equal(t, []string{"example.com", "*.trusted.test", "other.org"}, cfg.Strings("site.domains", nil))
	require.Equal(t, []string{"a", "b"}, cfg.Strings("site.tags", nil))
	require.Equal(t, []string{"Plaza"}, cfg.Strings("site.title", nil))

	// Defaults on absence and mismatch.
	require.Equal(t, 7, cfg.Int("missing", 7))
	require.Equal(t, 7, cfg.Int("site.title", 7))
	require.True(t, cfg.Bool("missing", true))
	require.Equal(t, time.Minute, cfg.Duration("site.title", time.Minute))
}

func TestYAMLDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a/site.yaml": &fstest.MapFile{Data: []byte("garden:\n  title: Plaza\n  locale: en\n")},
		"b/over.yml":  &fstest.MapFile{Data: []byte("garden:\n  locale: de\n")},
		"ignored.txt": &fstest.MapFile{Data: []byte("not yaml")},
	}

	cfg := newTestConfig(t, config.WithYAMLDir(fsys))

	require.Equal(t, "Plaza", cfg.String("garden.title", ""))
	require.Equal(t, "de", cfg.String("garden.locale", ""), "later files override in lexical order")
}

func TestYAMLDirInvalid(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"broken.yaml": &fstest.MapFile{Data: []byte(":\n\t-bad")},
	}

	_, err := config.New(config.WithYAMLDir(fsys))
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrInvalidFile)
}

func TestWithEnv(t *testing.T) {
	t.Setenv("PLAZATEST_GARDEN_TITLE", "From env")
	t.Setenv("PLAZATEST_GARDEN_COOKIE_NAME", "plz")

	cfg, err := config.New(
		config.WithDefaults(map[string]any{"garden": map[string]any{"title": "Default"}}),
		config.WithEnv("PLAZATEST"),
	)
	require.NoError(t, err)

	require.Equal(t, "From env", cfg.String("garden.title", ""))
	require.Equal(t, "plz", cfg.String("garden.cookie.name", ""))
}

func TestWithEnvEmptyPrefix(t *testing.T) {
	t.Parallel()

	_, err := config.New(config.WithEnv(""))
	require.ErrorIs(t, err, config.ErrEmptyPrefix)
}

func TestSub(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, config.WithValues(map[string]any{
		"theme.banner.title.color": "#fff",
		"theme.banner.show":        true,
		"theme.footer.show":        false,
	}))
	cfg.Set("theme.banner.text", "Welcome")
	cfg.Remove("theme.banner.show")

	sub := cfg.Sub("theme.banner")
	require.Equal(t, map[string]any{
		"title.color": "#fff",
		"text":        "Welcome",
	}, sub)
}

func TestSaveTo(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, config.WithValues(map[string]any{
		"garden.title":       "Plaza",
		"garden.cookie.name": "plz",
		"theme.banner.show":  true,
	}))
	cfg.Set("garden.locale", "en")
	cfg.Remove("theme.banner.show")

	var buf bytes.Buffer
	require.NoError(t, cfg.SaveTo(&buf))

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &tree))

	garden, ok := tree["garden"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Plaza", garden["title"])
	require.Equal(t, "en", garden["locale"])

	cookie, ok := garden["cookie"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "plz", cookie["name"])

	_, hasTheme := tree["theme"]
	require.False(t, hasTheme, "removed keys are not persisted")
}

func TestBind(t *testing.T) {
	type serverConfig struct {
		Addr    string        `env:"PLAZABINDTEST_ADDR" envDefault:":8080"`
		Timeout time.Duration `env:"PLAZABINDTEST_TIMEOUT" envDefault:"5s"`
	}

	t.Setenv("PLAZABINDTEST_ADDR", ":9090")

	var sc serverConfig
	require.NoError(t, config.Bind(&sc))
	require.Equal(t, ":9090", sc.Addr)
	require.Equal(t, 5*time.Second, sc.Timeout)

	require.ErrorIs(t, config.Bind(nil), config.ErrNilStruct)
}
