// statuspaper shows the host status on a Waveshare e-paper HAT.
//
// Every flag can also be set from the environment with the STATUSPAPER_
// prefix, e.g. STATUSPAPER_DEBUG=1 or STATUSPAPER_EXTERNAL_IP_URL=....
package main

import (
	"log/slog"
	"os"
)

// level is raised to Debug by --debug.
var level = new(slog.LevelVar)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
