package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/songzhibin97/prommetrics/pkg/alertrules"
	"github.com/songzhibin97/prommetrics/pkg/log"
)

const defaultGroup = "alerts"

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a rule definition file as Prometheus 1.x or 2.x rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringP("file", "f", "", "Rule definition file (YAML)")
	fs.String("group", "", "Rule group name, overrides groupName from the file")
	fs.String("format", "", "Output format: v1 or v2")
	fs.StringP("output", "o", "", "Write rules to this file instead of stdout")
	fs.String("doc-base-url", "", "Base URL for documentation links starting with '/'")
	return cmd
}

func (a *app) generate(stdout io.Writer) error {
	rc := a.cfg.Rules
	if rc.File == "" {
		return errors.New("no rule file given, use --file")
	}

	set, err := alertrules.Load(rc.File)
	if err != nil {
		return err
	}
	version, err := alertrules.ParseVersion(rc.Format)
	if err != nil {
		return err
	}

	group := rc.Group
	if group == "" {
		group = set.Group
	}
	if group == "" {
		group = defaultGroup
	}

	gen := alertrules.Generator{
		Prefix:     a.cfg.Metrics.Prefix,
		Group:      group,
		DocBaseURL: rc.DocBaseURL,
		Logger:     a.logger,
	}
	out, err := gen.Generate(version, set.Rules...)
	if err != nil {
		return err
	}

	if rc.Output == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(rc.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}
	a.logger.Info("alert rules written",
		log.String(log.FieldPath, rc.Output),
		log.String(log.FieldGroup, group),
		log.String(log.FieldVersion, version.String()),
		log.Int(log.FieldRules, len(set.Rules)))
	return nil
}
