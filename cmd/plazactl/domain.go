package main

import (
	"github.com/spf13/cobra"

	"github.com/plazakit/plaza/pkg/dnsverify"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Custom domain ownership verification",
}

var domainTokenCmd = &cobra.Command{
	Use:   "token <token>",
	Short: "Print the TXT record to publish for a verification token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out.Info("publish this TXT record on the domain:")
		out.Info("  %s", dnsverify.TokenRecord(args[0]))
	},
}

var domainVerifyCmd = &cobra.Command{
	Use:   "verify <domain> <token>",
	Short: "Check that a domain publishes the verification token",
	Long: `Looks up the domain's TXT records and confirms one of them is exactly
the verification record for the token. Run it before adding the domain
to garden.trusteddomains.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, token := args[0], args[1]
		out.Step("looking up TXT records for %s", domain)

		if err := dnsverify.Verify(cmd.Context(), domain, token); err != nil {
			return err
		}
		out.Success("%s is verified", domain)
		return nil
	},
}

func init() {
	domainCmd.AddCommand(domainTokenCmd, domainVerifyCmd)
	rootCmd.AddCommand(domainCmd)
}
