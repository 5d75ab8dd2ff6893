package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/config"
)

var flagConfigPreset string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration a game would use, as YAML, after the search
order (--config, ~/.lumines/configs/lumines.yaml, ./configs/lumines.yaml,
embedded default) and an optional difficulty preset.

The source that won is printed to stderr, so the output can be saved as a
starting point for a custom config:

  lumines config > my-lumines.yaml
  lumines config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPreset, "difficulty", "", "Apply a difficulty preset before printing")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadLuminesFrom(flagConfig)
	if err != nil {
		return err
	}

	if flagConfigPreset != "" {
		preset, ok := config.ParsePreset(flagConfigPreset)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagConfigPreset)
		}
		config.ApplyLuminesPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}
