package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/plazakit/plaza/pkg/theme"
)

var themeContent bool

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect resolved theme variables",
}

var themeBannerCmd = &cobra.Command{
	Use:   "banner",
	Short: "Print the resolved banner variable tree as JSON",
	Long: `Resolves the banner variable cascade (built-in defaults, then the
theme.banner.* configuration keys, with theme.contentbanner.* applied
on top for --content) and prints the JSON the daemon would serve.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		banner := theme.Variables(cfg)
		if themeContent {
			banner = theme.ContentBanner(cfg)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(banner)
	},
}

func init() {
	themeBannerCmd.Flags().BoolVar(&themeContent, "content", false, "print the content-banner variant")
	themeCmd.AddCommand(themeBannerCmd)
	rootCmd.AddCommand(themeCmd)
}
