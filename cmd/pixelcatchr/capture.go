package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"

	"pixelcatchr/internal/app"
	"pixelcatchr/internal/overlay"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Select a region once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver.Main(func(scr screen.Screen) {
			newLoop(overlay.NewHost(scr), nil).Handle(cmd.Context(), app.StartZoneCapture())
		})
		return nil
	},
}

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Save the whole desktop once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		newLoop(nil, nil).Handle(cmd.Context(), app.StartFullCapture())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd, fullCmd)
}
