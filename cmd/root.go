// Package cmd provides the CLI commands for the diary.
//
// Diary - A command-line journal with streaks, goals and memories
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/config"
	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/output"
	"github.com/nova728/diary/internal/parser"
	"github.com/nova728/diary/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagUser   string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A command-line journal with streaks, goals and memories",
	Long: `Diary keeps a private journal on your machine and derives writing
streaks, achievements, goal progress and memories from it.

Examples:
  diary write "Rainy Sunday" --mood calm --tag weekend
  diary list this week
  diary stats
  diary memories
  diary goal set --daily 500 --reminder on --at 21:30`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion, help and version
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		initLogging(cfg)

		opts := runtime.DefaultOptions(cfg)
		opts.User = flagUser
		opts.Format = output.ParseFormat(flagFormat)
		opts.ColorMode = output.ParseColorMode(flagColor)
		opts.Debug = flagDebug

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Debugf("runtime ready", logging.KeyUser, ctx.User, "db", ctx.DB.Path())
		return nil
	},
	RunE: runOverview,
}

// initLogging configures the global logger from the environment and --debug.
func initLogging(cfg config.Config) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.JSON = cfg.LogJSON
	logCfg.File = cfg.LogFilePath()
	if flagDebug {
		logCfg.Level = slog.LevelDebug
		logCfg.AddSource = true
	}
	logging.Init(logCfg)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The runtime context is closed here rather than in a post-run hook, which
// cobra skips when a command fails.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	if ctx != nil {
		if cerr := ctx.Close(); cerr != nil && err == nil {
			err = cerr
			printError(cerr)
		}
	}
	_ = logging.Close()
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "",
		"Act as this user (default $DIARY_USER or 'me')")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("diary %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// printError reports err on stderr, or as JSON on stdout when JSON output is selected.
func printError(err error) {
	var dateErr *parser.DateParseError
	if stderrors.As(err, &dateErr) {
		err = dateErr.ToUserError()
	}
	logging.DebugLog("command failed", logging.KeyError, err, "category", errors.Classify(err).String())

	if ctx != nil && ctx.IsJSON() {
		_ = ctx.JSONFormatter().PrintError(err.Error(), errors.Classify(err).String(), errors.GetSuggestion(err))
		return
	}
	os.Stderr.WriteString("Error: " + errors.FormatByCategory(err) + "\n")
}
