package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write platform configuration keys",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a dotted configuration key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		value, ok := cfg.Get(args[0])
		if !ok {
			return fmt.Errorf("key %q is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key and rewrite the configuration file",
	Long: `Sets a dotted key and persists the merged configuration back to the
file named by --config. Values parse as bool or number when they look
like one, and stay strings otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Set(args[0], parseScalar(args[1]))

		f, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := cfg.SaveTo(f); err != nil {
			return err
		}

		out.Success("%s = %s, saved to %s", args[0], args[1], configPath)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "Print all keys, optionally under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		view := cfg.All()
		prefix := ""
		if len(args) == 1 {
			view = cfg.Sub(args[0])
			prefix = args[0] + "."
		}
		for _, key := range sortedKeys(view) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s = %v\n", prefix, key, view[key])
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func parseScalar(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
