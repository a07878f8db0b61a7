package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of geoqa.",
	Long: `Display the release version along with build metadata.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Go runtime version and platform

Include this output when reporting bugs so a build can be matched back
to its source.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("geoqa CLI\n")
		cmd.Printf("  Version:  %s\n", version)
		cmd.Printf("  Commit:   %s\n", commit)
		cmd.Printf("  Built:    %s\n", date)
		cmd.Printf("  Runtime:  %s\n", runtime.Version())
		cmd.Printf("  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
