package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var (
	flagRulesInit  bool
	flagRulesForce bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print or install the game rules file",
	Long: `Print the rules that would be used for a game: physics, enemy speeds,
scoring and session settings.

Without flags, prints the effective rules after --config and --difficulty.
With --init, writes the default rules to ~/.platformer/configs/platformer.yaml
so they can be edited; later games pick that file up automatically.

Examples:
  platformer rules
  platformer rules --difficulty hard
  platformer rules --init`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rulesCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rulesCmd.Flags().BoolVar(&flagRulesInit, "init", false, "Write the default rules to the user config directory")
	rulesCmd.Flags().BoolVar(&flagRulesForce, "force", false, "Overwrite an existing rules file with --init")

	rootCmd.AddCommand(rulesCmd)
}

func runRules(_ *cobra.Command, _ []string) {
	if flagRulesInit {
		initRules()
		return
	}

	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPlatformerPreset(&cfg, preset)

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func initRules() {
	path := config.UserConfigPath()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find the home directory")
		os.Exit(1)
	}

	if _, err := os.Stat(path); err == nil && !flagRulesForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, config.DefaultPlatformerYAML(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("wrote rules file", "path", path)
	fmt.Printf("Wrote %s\n", path)
}
