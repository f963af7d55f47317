// platformer plays side-scrolling platformer courses in the terminal.
//
// Usage:
//
//	platformer list                 - List available courses
//	platformer play [course]        - Play a course (default 1-1)
//	platformer menu                 - Pick courses interactively
//	platformer serve                - Start SSH server for remote play
//	platformer scores <course>      - Show the best runs on a course
//	platformer levels validate <f>  - Check course files
//	platformer levels show <course> - Print a course as text
//	platformer rules                - Print or install the rules file
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--db <path>        - Set database path (default: ~/.platformer/scores.db)
//	--levels <dir>     - Load extra courses from a directory
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
//	--player <name>    - Name recorded with local runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagLevelsDir string
	flagLogFile   string
	flagLogLevel  string
	flagPlayer    string
)

// logger is configured once flags are parsed.
var logger = log.New(os.Stderr)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Super Terminal Bros. - a side-scrolling platformer in your terminal",
	Long: `Super Terminal Bros. is a side-scrolling platformer played in the
terminal. Run right, stomp enemies, grab power-ups and reach the flag.

Available commands:
  list     - Show all available courses
  play     - Play a course directly
  menu     - Interactive course picker
  serve    - Start SSH server for remote play
  scores   - View the best runs on a course
  levels   - Validate or inspect course files
  rules    - Print or install the rules file

Examples:
  platformer list
  platformer play 1-1
  platformer play --level ./my-course.yaml
  platformer menu --levels ./courses
  platformer serve --ssh :2222
  platformer scores 1-1`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra course files")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", storage.LocalPlayer, "Player name recorded with local runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// setup configures logging and registers courses from --levels.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	out := os.Stderr
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "platformer",
	})
	platformer.SetLogger(logger)

	if flagLevelsDir != "" {
		l := levels.NewLoader(flagLevelsDir)
		l.Logger = logger
		added, loadErr := platformer.RegisterCourses(l)
		if loadErr != nil {
			return fmt.Errorf("cannot load courses from %s: %w", flagLevelsDir, loadErr)
		}
		logger.Info("loaded courses", "dir", flagLevelsDir, "count", added)
	}

	return nil
}

// tuiLogger is the logger for full-screen commands: stderr would draw over
// the game, so logs go nowhere unless --log-file is set.
func tuiLogger() *log.Logger {
	if flagLogFile != "" {
		return logger
	}
	quiet := logger.With()
	quiet.SetLevel(log.FatalLevel)
	platformer.SetLogger(quiet)
	return quiet
}
