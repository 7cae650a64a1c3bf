// Package theme computes the site's banner theme variables.
//
// The banner is styled by the front end from a JSON variable tree.
// Variables layers that tree from three sources, later winning:
// built-in defaults, "theme.banner.*" configuration keys, and per-call
// overrides.
//
//	b := theme.Variables(cfg, theme.WithAssets(site))
//
// ContentBanner produces the narrower variant shown above single
// discussions, further adjustable through "theme.contentbanner.*".
// Handler and ContentHandler expose both trees over HTTP; the daemon
// mounts Handler at /api/themes/banner.json.
//
// Image paths resolve through the WithAssets builder, so manifest
// versioning and upload URLs apply to banner backgrounds the same way
// they apply to every other asset. Absolute URLs pass through.
package theme
