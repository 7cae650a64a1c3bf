package theme_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/pkg/config"
	"github.com/plazakit/plaza/pkg/theme"
)

func testConfig(t *testing.T, values map[string]any) *config.Config {
	t.Helper()

	cfg, err := config.New(config.WithValues(values))
	require.NoError(t, err)
	return cfg
}

type fakeAssets struct {
	calls []string
}

func (f *fakeAssets) Asset(path string, withDomain, withVersion bool) string {
	f.calls = append(f.calls, path)
	return "https://cdn.example.com/" + path
}

func TestVariablesDefaults(t *testing.T) {
	t.Parallel()

	b := theme.Variables(nil)

	require.True(t, b.Enabled)
	require.Equal(t, "center", b.Alignment)
	require.Equal(t, 240, b.Height)
	require.Equal(t, "#0291db", b.Colors.Primary)
	require.Equal(t, b.Colors.Primary, b.Colors.Bg)
	require.Equal(t, b.Colors.Contrast, b.Colors.Fg)
	require.True(t, b.Title.Show)
	require.Equal(t, 32, b.Title.FontSize)
	require.True(t, b.SearchBar.Show)
	require.Equal(t, theme.Spacing{Top: 48, Bottom: 48}, b.Spacing)
}

func TestVariablesConfigCascade(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"garden.title":                  "Acme Forum",
		"garden.description":            "Where widgets get discussed.",
		"theme.banner.height":           300,
		"theme.banner.colors.primary":   "#ff0000",
		"theme.banner.title.fontsize":   40,
		"theme.banner.searchbar.show":   false,
		"theme.banner.background.image": "banners/hero.jpg",
	})

	b := theme.Variables(cfg)

	require.Equal(t, "Acme Forum", b.Title.Text)
	require.Equal(t, "Where widgets get discussed.", b.Description.Text)
	require.Equal(t, 300, b.Height)
	require.Equal(t, "#ff0000", b.Colors.Primary)
	require.Equal(t, "#ff0000", b.Colors.Bg, "bg follows primary until pinned")
	require.Equal(t, "#ffffff", b.Colors.Contrast)
	require.Equal(t, 40, b.Title.FontSize)
	require.False(t, b.SearchBar.Show)
	require.Equal(t, "banners/hero.jpg", b.Background.Image)
}

func TestVariablesPinnedBg(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"theme.banner.colors.primary": "#ff0000",
		"theme.banner.colors.bg":      "#222222",
	})

	b := theme.Variables(cfg)
	require.Equal(t, "#ff0000", b.Colors.Primary)
	require.Equal(t, "#222222", b.Colors.Bg)
}

func TestVariablesBannerTitleBeatsGarden(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"garden.title":            "Site Name",
		"theme.banner.title.text": "Welcome!",
	})

	b := theme.Variables(cfg)
	require.Equal(t, "Welcome!", b.Title.Text)
}

func TestVariablesOverridesWin(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"theme.banner.title.text": "From Config",
	})

	b := theme.Variables(cfg,
		theme.WithTitle("From Caller"),
		theme.WithOverride(func(b *theme.Banner) { b.Height = 111 }),
	)
	require.Equal(t, "From Caller", b.Title.Text)
	require.Equal(t, 111, b.Height)
}

func TestContentBanner(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"garden.title":                "Acme Forum",
		"theme.banner.colors.primary": "#ff0000",
		"theme.banner.colors.bg":      "#222222",
	})

	b := theme.ContentBanner(cfg)

	require.Equal(t, 120, b.Height)
	require.Equal(t, 24, b.Title.FontSize)
	require.False(t, b.Description.Show)
	require.False(t, b.SearchBar.Show)
	require.Equal(t, theme.Spacing{Top: 24, Bottom: 24}, b.Spacing)

	// Inherits the banner's configuration, pinned colors included.
	require.Equal(t, "Acme Forum", b.Title.Text)
	require.Equal(t, "#ff0000", b.Colors.Primary)
	require.Equal(t, "#222222", b.Colors.Bg)
}

func TestContentBannerConfigKeys(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"theme.banner.height":        300,
		"theme.contentbanner.height": 90,
	})

	b := theme.ContentBanner(cfg)
	require.Equal(t, 90, b.Height)

	// The full banner keeps its own value.
	require.Equal(t, 300, theme.Variables(cfg).Height)
}

func TestImageResolution(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{
		"theme.banner.background.image": "banners/hero.jpg",
		"theme.banner.logo.image":       "https://files.example.com/logo.png",
	})

	assets := &fakeAssets{}
	b := theme.Variables(cfg, theme.WithAssets(assets))

	require.Equal(t, "https://cdn.example.com/banners/hero.jpg", b.Background.Image)
	require.Equal(t, "https://files.example.com/logo.png", b.Logo.Image, "absolute URLs pass through")
	require.Equal(t, []string{"banners/hero.jpg"}, assets.calls)

	// Without a resolver the configured path is emitted as-is.
	raw := theme.Variables(cfg)
	require.Equal(t, "banners/hero.jpg", raw.Background.Image)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, map[string]any{"garden.title": "Acme Forum"})
	h := theme.Handler(cfg)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/themes/banner.json", nil))

	require.Equal(t, 200, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var b theme.Banner
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
	require.Equal(t, "Acme Forum", b.Title.Text)

	// Runtime configuration writes show up on the next request.
	cfg.Set("theme.banner.height", 99)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/themes/banner.json", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
	require.Equal(t, 99, b.Height)
}

func TestContentHandler(t *testing.T) {
	t.Parallel()

	h := theme.ContentHandler(testConfig(t, nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/themes/content-banner.json", nil))

	require.Equal(t, 200, rr.Code)

	var b theme.Banner
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
	require.Equal(t, 120, b.Height)
	require.False(t, b.SearchBar.Show)
}
