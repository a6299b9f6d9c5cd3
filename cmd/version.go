package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wandermatch/matchengine/internal/cache"
)

// Actual version can be specified in the build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (sqlite driver: %s, build mode: %s)\n", app, version, cache.DriverName, cache.BuildMode)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
