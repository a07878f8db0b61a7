// main is the entry point for the geoqa CLI.
package main

import (
	"github.com/geoqa/geoqa/cmd"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/internal/runstore"
)

func main() {
	// Wire the global run store manager into the command layer before any
	// command runs.
	cmd.SetStoreManager(runstore.Manager)

	err := cmd.Execute()

	// Flush profiling data and close the store even when the command failed.
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	runstore.CloseRunTracking()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
