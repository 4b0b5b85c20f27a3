package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pixelcatchr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settings.Path())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configToggleCmd = &cobra.Command{
	Use:       "toggle <option>",
	Short:     "Flip a boolean option",
	Long:      "Flip a boolean option and save it. Options: " + strings.Join(config.Toggles(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Toggles(),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := settings.Toggle(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", args[0], v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd, configToggleCmd)
	rootCmd.AddCommand(configCmd)
}
