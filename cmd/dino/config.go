package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lcd-dino/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file search, environment overrides
(DINO_DB, DINO_DEVICE, DINO_TIMING_SCALE, DINO_RENDERER, DINO_HOLD) and global
flags have been applied.

Search order:
  --config <path> -> ~/.lcd-dino/config.yaml -> ./configs/dino.yaml -> built-in

Examples:
  dino config
  dino config --default > ~/.lcd-dino/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if flagShowDefault {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
