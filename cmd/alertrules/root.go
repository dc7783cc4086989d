package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/songzhibin97/prommetrics/internal/config"
	"github.com/songzhibin97/prommetrics/internal/log/driver/stdout"
	"github.com/songzhibin97/prommetrics/pkg/log"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	flags  *viper.Viper
	cfg    *config.Config
	logger log.Logger
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"prefix":       "metrics.prefix",
	"descriptions": "metrics.descriptions",
	"file":         "rules.file",
	"group":        "rules.group",
	"format":       "rules.format",
	"output":       "rules.output",
	"doc-base-url": "rules.doc_base_url",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

func newRootCommand() *cobra.Command {
	a := &app{flags: viper.New()}

	cmd := &cobra.Command{
		Use:          "alertrules",
		Short:        "Generate Prometheus alerting rules for prommetrics registries",
		Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringP("config", "c", "", "Path to config file")
	fs.String("prefix", "", "Registry prefix, e.g. MyApp")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("log-format", "", "Log format (json, console)")

	cmd.AddCommand(newGenerateCommand(a), newNormalizeCommand(a))
	return cmd
}

// setup loads the configuration file and environment, then applies every
// flag the user set explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	if err := bindFlags(a.flags, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(a.flags.GetString("config"))
	if err != nil {
		return err
	}
	applyFlags(cfg, a.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := log.ParseLevel(cfg.Logging.Level)
	logCfg := stdout.DefaultConfig()
	logCfg.Level = level
	logCfg.Console = cfg.Logging.Format == "console"
	logCfg.Output = cmd.ErrOrStderr()
	a.logger = stdout.New(logCfg).With(log.String(log.FieldComponent, cmd.Name()))
	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = fmt.Errorf("failed to bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// applyFlags overrides cfg with flags that were set on the command line.
// Bound flags only report IsSet once they have been changed.
func applyFlags(cfg *config.Config, v *viper.Viper) {
	targets := map[string]*string{
		"metrics.prefix":       &cfg.Metrics.Prefix,
		"metrics.descriptions": &cfg.Metrics.Descriptions,
		"rules.file":           &cfg.Rules.File,
		"rules.group":          &cfg.Rules.Group,
		"rules.format":         &cfg.Rules.Format,
		"rules.output":         &cfg.Rules.Output,
		"rules.doc_base_url":   &cfg.Rules.DocBaseURL,
		"logging.level":        &cfg.Logging.Level,
		"logging.format":       &cfg.Logging.Format,
	}
	for key, target := range targets {
		if v.IsSet(key) {
			*target = v.GetString(key)
		}
	}
}
