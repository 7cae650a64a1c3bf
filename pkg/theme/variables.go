package theme

import (
	"strings"

	"github.com/plazakit/plaza/pkg/config"
)

// AssetURLer resolves asset paths to URLs; *weburl.Builder satisfies
// it, including its manifest and upload lookups.
type AssetURLer interface {
	Asset(path string, withDomain, withVersion bool) string
}

type options struct {
	assets AssetURLer
	mutate []func(*Banner)
}

// Override adjusts a single Variables or ContentBanner call.
type Override func(*options)

// WithAssets resolves background and logo image paths through the
// given builder. Without it paths are emitted as configured.
func WithAssets(assets AssetURLer) Override {
	return func(o *options) {
		o.assets = assets
	}
}

// WithOverride applies an arbitrary mutation after configuration.
func WithOverride(fn func(*Banner)) Override {
	return func(o *options) {
		if fn != nil {
			o.mutate = append(o.mutate, fn)
		}
	}
}

// WithTitle replaces the banner title text.
func WithTitle(text string) Override {
	return WithOverride(func(b *Banner) {
		b.Title.Text = text
	})
}

// WithBackgroundImage replaces the background image path.
func WithBackgroundImage(path string) Override {
	return WithOverride(func(b *Banner) {
		b.Background.Image = path
	})
}

// Variables computes the banner variable tree: built-in defaults,
// overridden by "theme.banner.*" configuration keys, overridden by
// per-call overrides. Title and description text fall back to the
// site's "garden.title" and "garden.description".
func Variables(cfg *config.Config, overrides ...Override) Banner {
	b := Defaults()
	if cfg != nil {
		b.Title.Text = cfg.String("garden.title", b.Title.Text)
		b.Description.Text = cfg.String("garden.description", b.Description.Text)
		applyConfig(&b, cfg, "theme.banner")
	}
	return finish(b, overrides)
}

// ContentBanner is the narrower banner rendered above individual
// discussions and profiles: shorter, title only, no search. It starts
// from Variables and is then adjusted by "theme.contentbanner.*" keys
// and per-call overrides.
func ContentBanner(cfg *config.Config, overrides ...Override) Banner {
	b := Variables(cfg)

	b.Height = 120
	b.Title.FontSize = 24
	b.Description.Show = false
	b.SearchBar.Show = false
	b.Spacing = Spacing{Top: 24, Bottom: 24}

	if cfg != nil {
		applyConfig(&b, cfg, "theme.contentbanner")
	}
	return finish(b, overrides)
}

func finish(b Banner, overrides []Override) Banner {
	var o options
	for _, override := range overrides {
		override(&o)
	}
	for _, fn := range o.mutate {
		fn(&b)
	}

	b.Background.Image = resolveImage(o.assets, b.Background.Image)
	b.Logo.Image = resolveImage(o.assets, b.Logo.Image)
	return b
}

// applyConfig overlays the subtree under prefix onto b, field by
// field, keeping the current value when a key is absent.
func applyConfig(b *Banner, cfg *config.Config, prefix string) {
	key := func(parts ...string) string {
		return prefix + "." + strings.Join(parts, ".")
	}

	b.Enabled = cfg.Bool(key("enabled"), b.Enabled)
	b.Alignment = cfg.String(key("alignment"), b.Alignment)
	b.Height = cfg.Int(key("height"), b.Height)

	// Bg and Fg follow the primary pair until a key pins them.
	prevPrimary, prevContrast := b.Colors.Primary, b.Colors.Contrast
	b.Colors.Primary = cfg.String(key("colors", "primary"), b.Colors.Primary)
	b.Colors.Contrast = cfg.String(key("colors", "contrast"), b.Colors.Contrast)
	if b.Colors.Bg == prevPrimary {
		b.Colors.Bg = b.Colors.Primary
	}
	if b.Colors.Fg == prevContrast {
		b.Colors.Fg = b.Colors.Contrast
	}
	b.Colors.Bg = cfg.String(key("colors", "bg"), b.Colors.Bg)
	b.Colors.Fg = cfg.String(key("colors", "fg"), b.Colors.Fg)

	b.Background.Color = cfg.String(key("background", "color"), b.Background.Color)
	b.Background.Image = cfg.String(key("background", "image"), b.Background.Image)
	b.Background.Position = cfg.String(key("background", "position"), b.Background.Position)
	b.Background.Overlay = cfg.Bool(key("background", "overlay"), b.Background.Overlay)

	b.Title.Show = cfg.Bool(key("title", "show"), b.Title.Show)
	b.Title.Text = cfg.String(key("title", "text"), b.Title.Text)
	b.Title.FontSize = cfg.Int(key("title", "fontsize"), b.Title.FontSize)
	b.Title.FontWeight = cfg.Int(key("title", "fontweight"), b.Title.FontWeight)

	b.Description.Show = cfg.Bool(key("description", "show"), b.Description.Show)
	b.Description.Text = cfg.String(key("description", "text"), b.Description.Text)
	b.Description.FontSize = cfg.Int(key("description", "fontsize"), b.Description.FontSize)

	b.SearchBar.Show = cfg.Bool(key("searchbar", "show"), b.SearchBar.Show)
	b.SearchBar.Placeholder = cfg.String(key("searchbar", "placeholder"), b.SearchBar.Placeholder)
	b.SearchBar.Height = cfg.Int(key("searchbar", "height"), b.SearchBar.Height)
	b.SearchBar.BorderRadius = cfg.Int(key("searchbar", "borderradius"), b.SearchBar.BorderRadius)

	b.Logo.Image = cfg.String(key("logo", "image"), b.Logo.Image)
	b.Logo.Width = cfg.Int(key("logo", "width"), b.Logo.Width)
	b.Logo.Height = cfg.Int(key("logo", "height"), b.Logo.Height)

	b.Spacing.Top = cfg.Int(key("spacing", "top"), b.Spacing.Top)
	b.Spacing.Bottom = cfg.Int(key("spacing", "bottom"), b.Spacing.Bottom)
}

func resolveImage(assets AssetURLer, path string) string {
	if path == "" || assets == nil || isAbsoluteURL(path) {
		return path
	}
	return assets.Asset(path, true, true)
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "//")
}
