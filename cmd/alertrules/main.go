// Command alertrules generates Prometheus alerting rules for metrics
// created through a prommetrics registry, and previews how metric names
// are qualified and described.
package main

import (
	"fmt"
	"os"
)

// Version information
var (
	Version   = "v1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
