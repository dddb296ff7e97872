// dino is a 16x2 character-LCD runner game emulated in the terminal.
//
// Usage:
//
//	dino play                - Power up a device in this terminal
//	dino serve               - Start SSH server, one device per connection
//	dino sim --press 12,13   - Headless run with a scripted button
//	dino scores              - Show the run history of a device
//	dino best [--reset]      - Show or clear the stored best score
//	dino renderers           - List available renderers
//	dino config              - Print the effective configuration
//
// Global flags:
//
//	--db <path>        - Database path (default from config: ~/.lcd-dino/dino.db)
//	--config <path>    - Configuration file
//	--scale <factor>   - Multiply every game pause
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-dino/internal/config"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagScale    float64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dino",
	Short: "LCD Dino - a 16x2 character LCD runner in your terminal",
	Long: `LCD Dino emulates a small microcontroller game: a dinosaur on a 16x2
character LCD jumps over a cactus with a single button. The best score is
kept in a non-volatile cell that survives power cycles.

Available commands:
  play       - Power up a device in this terminal
  serve      - Start SSH server for remote play
  sim        - Headless run with a scripted button
  scores     - View the run history
  best       - Show or reset the best score
  renderers  - List available renderers
  config     - Print the effective configuration

Examples:
  dino play
  dino play --renderer big
  dino serve --ssh :2222
  dino sim --press 12-14 --ticks 40
  dino best --reset`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (empty with --db=\"\" keeps scores in memory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Float64Var(&flagScale, "scale", 0, "Multiply every game pause (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(renderersCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.DB = flagDBPath
	}
	if flagScale > 0 {
		cfg.Timing.Scale = flagScale
	}
	return cfg, nil
}

// newLogger returns a logger writing to --log-file, or to fallback when no
// file is given. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	w := fallback
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// openCell opens the best-score cell of a device. Without a database, or if
// it cannot be opened, scores live in memory for this process only. The
// returned store is nil in that case.
func openCell(cfg config.Config, device string, logger *log.Logger) (dino.Cell, dino.RunRecorder, *storage.Store) {
	if cfg.Storage.DB == "" {
		return storage.NewMemoryCell(0), nil, nil
	}
	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		logger.Warn("could not open database, best score will not persist", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return storage.NewMemoryCell(0), nil, nil
	}
	cell := store.Cell(device)
	return cell, cell, store
}

// openStore opens the database for the history commands.
func openStore(cfg config.Config) (*storage.Store, error) {
	if cfg.Storage.DB == "" {
		return nil, fmt.Errorf("no database configured")
	}
	return storage.Open(cfg.Storage.DB)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
