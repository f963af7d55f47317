package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelFile  string
	flagStrict     bool
)

var playCmd = &cobra.Command{
	Use:   "play [course]",
	Short: "Play a course",
	Long: `Start playing the specified course, or 1-1 when none is given.

Controls:
  Left/Right, A/D       - Walk
  Shift+arrow, A/D caps  - Run
  X                     - Toggle run lock
  Up/W/Space            - Jump (hold for a higher jump)
  P                     - Pause
  R                     - Restart (after game over: new game)
  F3                    - Show hitboxes
  Esc/B                 - Back to menu (paused or finished)
  Ctrl+S                - Save a text screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Five lives, a longer clock, slower enemies
  normal - The default rules
  hard   - Two lives, a shorter clock, faster enemies

Examples:
  platformer play
  platformer play 1-2 --difficulty hard
  platformer play --level ./my-course.tmx
  platformer play 1-1 --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevelFile, "level", "", "Play a course file instead of a registered course")
	playCmd.Flags().BoolVar(&flagStrict, "strict", false, "Enforce layout density rules on --level")
}

// applyRules passes --config and --difficulty to the game package.
func applyRules() error {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the runs database; games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	if err := applyRules(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var game registry.Game
	if flagLevelFile != "" {
		lvl, err := levels.LoadPath(flagLevelFile, flagStrict)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading course: %v\n", err)
			os.Exit(1)
		}
		game = platformer.New(lvl)
	} else {
		course := "1-1"
		if len(args) > 0 {
			course = args[0]
		}
		id, err := resolveCourse(course)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		game, err = registry.Create(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
	}

	store := openStore()

	_, runErr := tui.Run(game, runtimeConfig(), tui.GameOptions{
		Store:  store,
		Player: flagPlayer,
		Logger: tuiLogger(),
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
