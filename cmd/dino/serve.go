package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection powers its own device. The SSH user name selects the
best-score cell, so every user keeps their own record in the shared database.
Dropping the connection cuts the device's power.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lcd-dino/host_key

Examples:
  dino serve                           # Listen on :23235 with auto-generated key
  dino serve --ssh :2222               # Listen on port 2222
  dino serve --host-key ./my_host_key  # Use specific host key
  dino serve --db ./dino.db            # Use specific database

Users can connect with:
  ssh alice@localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(os.Stderr, "dino-ssh")
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	scfg := tui.DefaultSSHServerConfig()
	scfg.Address = flagSSHAddr
	scfg.HostKeyPath = flagHostKey
	scfg.DBPath = cfg.Storage.DB
	scfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	scfg.Timing = dino.TimingFromConfig(cfg.Timing)
	scfg.Hold = cfg.Input.Hold
	scfg.Renderer = cfg.Display.Renderer
	scfg.Theme = tui.ThemeFromConfig(cfg.Display)
	scfg.FPS = cfg.Display.FPS

	server, err := tui.NewSSHServer(scfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting dino SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
