package theme

// Banner is the resolved variable tree for the site banner, the hero
// block rendered above listings. The front end consumes it as JSON and
// maps fields onto styles, so the schema is stable: every field is
// always emitted.
type Banner struct {
	Enabled     bool        `json:"enabled"`
	Alignment   string      `json:"alignment"`
	Height      int         `json:"height"`
	Colors      Colors      `json:"colors"`
	Background  Background  `json:"background"`
	Title       Title       `json:"title"`
	Description Description `json:"description"`
	SearchBar   SearchBar   `json:"searchBar"`
	Logo        Logo        `json:"logo"`
	Spacing     Spacing     `json:"spacing"`
}

// Colors are hex values; Bg and Fg default to the primary pair.
type Colors struct {
	Primary  string `json:"primary"`
	Contrast string `json:"contrast"`
	Bg       string `json:"bg"`
	Fg       string `json:"fg"`
}

// Background styles the banner surface. Image holds a resolved URL
// once Variables ran; Overlay keeps the text-protection layer the
// front end dims images with.
type Background struct {
	Color    string `json:"color"`
	Image    string `json:"image"`
	Position string `json:"position"`
	Overlay  bool   `json:"overlay"`
}

type Title struct {
	Show       bool   `json:"show"`
	Text       string `json:"text"`
	FontSize   int    `json:"fontSize"`
	FontWeight int    `json:"fontWeight"`
}

type Description struct {
	Show     bool   `json:"show"`
	Text     string `json:"text"`
	FontSize int    `json:"fontSize"`
}

type SearchBar struct {
	Show         bool   `json:"show"`
	Placeholder  string `json:"placeholder"`
	Height       int    `json:"height"`
	BorderRadius int    `json:"borderRadius"`
}

// Logo is optional; zero Width/Height mean natural size.
type Logo struct {
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Spacing is vertical padding in pixels.
type Spacing struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Defaults returns the banner before any configuration is applied.
func Defaults() Banner {
	return Banner{
		Enabled:   true,
		Alignment: "center",
		Height:    240,
		Colors: Colors{
			Primary:  "#0291db",
			Contrast: "#ffffff",
			Bg:       "#0291db",
			Fg:       "#ffffff",
		},
		Background: Background{
			Position: "center center",
			Overlay:  true,
		},
		Title: Title{
			Show:       true,
			FontSize:   32,
			FontWeight: 700,
		},
		Description: Description{
			Show:     true,
			FontSize: 16,
		},
		SearchBar: SearchBar{
			Show:         true,
			Height:       40,
			BorderRadius: 6,
		},
		Spacing: Spacing{
			Top:    48,
			Bottom: 48,
		},
	}
}
