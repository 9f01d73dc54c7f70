package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/bcdxn/f1results/internal/config"
	"github.com/bcdxn/f1results/internal/f1data"
	"github.com/bcdxn/f1results/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	err := rootCmd(a).ExecuteContext(ctx)
	// cobra skips post-run hooks when a command fails, so the log file is released here
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root command has loaded the configuration.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
	client f1data.Client
}

func rootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "f1results",
		Short:        "Formula 1 qualifying and race results",
		Long:         "Browse qualifying and race classifications of every Formula 1 season since 2005",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("env-file", ".env", "Path to a .env file with F1_* settings")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides F1_LOG_LEVEL)")
	cmd.PersistentFlags().String("log-file", "", "File to write logs to (overrides F1_LOG_FILE)")

	cmd.AddCommand(
		raceCmd(a),
		seasonCmd(a),
		seasonsCmd(a),
	)

	return cmd
}

// setup loads the configuration, applies flag overrides and creates the logger and API client.
func (a *app) setup(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		cfg.LogFile = file
	}

	l, closer, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	l.Debug("configuration loaded", "jolpica", cfg.JolpicaBaseURL, "openf1", cfg.OpenF1BaseURL, "cutoff", cfg.LegacyCutoffYear)

	a.cfg = cfg
	a.logger = l
	a.closer = closer
	a.client = newClient(cfg, l)
	return nil
}

// close releases the log file, if setup got as far as opening one.
func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func newClient(cfg config.Config, l *slog.Logger) f1data.Client {
	return f1data.New(
		f1data.WithJolpicaBaseURL(cfg.JolpicaBaseURL),
		f1data.WithOpenF1BaseURL(cfg.OpenF1BaseURL),
		f1data.WithFirstSeason(cfg.FirstSeason),
		f1data.WithLegacyCutoffYear(cfg.LegacyCutoffYear),
		f1data.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		f1data.WithLogger(l),
	)
}
