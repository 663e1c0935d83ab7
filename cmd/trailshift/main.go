package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crimson-sun/trailshift/internal/config"
	"github.com/crimson-sun/trailshift/internal/engine"
	"github.com/crimson-sun/trailshift/internal/engine/diag"
	"github.com/crimson-sun/trailshift/internal/logging"
	"github.com/crimson-sun/trailshift/internal/output"
	"github.com/crimson-sun/trailshift/internal/output/file"
	"github.com/crimson-sun/trailshift/internal/output/multi"
	"github.com/crimson-sun/trailshift/internal/output/stdout"
	"github.com/crimson-sun/trailshift/internal/output/webhook"
	"github.com/crimson-sun/trailshift/internal/pipeline"
	"github.com/crimson-sun/trailshift/internal/source"

	// Register source implementations.
	_ "github.com/crimson-sun/trailshift/internal/source/local"
	_ "github.com/crimson-sun/trailshift/internal/source/s3"
)

const reportTitle = "IAM user working hours"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "trailshift: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "trailshift [flags] <log-path>",
		Short: "Summarize IAM user working hours from CloudTrail logs",
		Long: "trailshift reads CloudTrail log files from a file, a directory tree, or an\n" +
			"s3://bucket/prefix location and reports, per user and UTC day, when activity\n" +
			"started and ended.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set("path", args[0])
			if cmd.Flags().Changed("no-color") {
				v.Set("color", false)
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (default ./trailshift.yaml)")
	f.StringP("username", "u", "", "only report this user")
	f.StringP("format", "f", "table", "report format: "+formatNames())
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.Bool("append", false, "append to the --output file instead of replacing it")
	f.Bool("debug", false, "trace every event decision")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("webhook", "", "also POST the report as JSON to this URL")
	f.Bool("no-color", false, "disable colored output")
	f.StringSlice("pattern", nil, "file patterns to read inside directories (repeatable)")
	f.String("region", "", "AWS region for s3:// locations")
	f.String("profile", "", "AWS shared config profile for s3:// locations")

	for key, name := range map[string]string{
		"actor":           "username",
		"format":          "format",
		"output":          "output",
		"append":          "append",
		"debug":           "debug",
		"log_level":       "log-level",
		"webhook.url":     "webhook",
		"source.patterns": "pattern",
		"aws.region":      "region",
		"aws.profile":     "profile",
	} {
		_ = v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

func formatNames() string {
	names := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func run(ctx context.Context, cfg *config.Config) error {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	structured := format != output.Table && cfg.Output == ""
	log := logging.Init(structured, logging.ParseLevel(cfg.EffectiveLogLevel())).
		With("run", uuid.NewString())
	slog.SetDefault(log)

	src, err := source.Open(cfg.Path, source.Config{
		Patterns: cfg.Source.Patterns,
		Region:   cfg.AWS.Region,
		Profile:  cfg.AWS.Profile,
	})
	if err != nil {
		return err
	}

	var sink diag.Sink = diag.Nop{}
	if cfg.Debug {
		sink = diag.NewLogger(log)
	}

	out, err := newOutput(cfg, format)
	if err != nil {
		return err
	}

	p := pipeline.New(src, engine.New(cfg.Actor, sink), out, log)
	res, runErr := p.Run(ctx, cfg.Path)
	if err := p.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	log.Info("done",
		"files", res.Files,
		"failed_files", len(res.FailedFiles),
		"days", len(res.Report.Summaries))
	return nil
}

func newOutput(cfg *config.Config, format output.Format) (output.Output, error) {
	var primary output.Output
	if cfg.Output != "" {
		var opts []file.Option
		if cfg.Append {
			opts = append(opts, file.WithAppend())
		}
		fo, err := file.New(cfg.Output, format, opts...)
		if err != nil {
			return nil, err
		}
		primary = fo
	} else {
		primary = stdout.New(format,
			stdout.WithTitle(reportTitle),
			stdout.WithColor(cfg.Color && !color.NoColor))
	}

	if cfg.Webhook.URL == "" {
		return primary, nil
	}
	hook := webhook.New(cfg.Webhook.URL,
		webhook.WithHeaders(cfg.Webhook.Headers),
		webhook.WithTimeout(cfg.Webhook.Timeout))
	return multi.New(primary, hook), nil
}
