package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/songzhibin97/prommetrics/pkg/descriptions"
	"github.com/songzhibin97/prommetrics/pkg/log"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

func newNormalizeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize NAME...",
		Short: "Print the exposed name and help text for raw metric names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.normalize(cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().String("descriptions", "", "Description table (.properties, .yaml, .json or .toml)")
	return cmd
}

// normalize prints one tab separated line per name: the qualified name
// followed by the description a registry would register it with.
func (a *app) normalize(w io.Writer, names []string) error {
	var table metrics.Descriptions
	if path := a.cfg.Metrics.Descriptions; path != "" {
		var err error
		if table, err = descriptions.Load(path); err != nil {
			return err
		}
		a.logger.Debug("descriptions loaded", log.FileFields(path, "load", len(table))...)
	}

	prefix := metrics.Prefix(a.cfg.Metrics.Prefix)
	for _, name := range names {
		qualified := metrics.QualifiedName(prefix, name)
		if err := metrics.ValidateMetricName(qualified); err != nil {
			return err
		}
		help := metrics.ResolveDescription(nil, qualified, qualified, table)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", qualified, help); err != nil {
			return err
		}
	}
	return nil
}
