package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Validate or inspect course files",
	Long: `Tools for course authors.

Course files may be YAML (.yaml, .yml), JSON (.json) or Tiled maps (.tmx).`,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file or dir>...",
	Short: "Check course files for errors",
	Long: `Parse and validate course files. Directories are searched recursively.

Every course must fit the size bounds, have a spawn and a flagpole, and use
known tiles and enemies. With --strict, plain ground stretches between
obstacles are limited too.

Examples:
  platformer levels validate ./courses
  platformer levels validate --strict my-course.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLevelsValidate,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <course or file>",
	Short: "Print a course as text",
	Long: `Print a course's layout with its spawn (M), enemies (g, k, p) and
flagpole (|) overlaid on the tiles.

Examples:
  platformer levels show 1-1
  platformer levels show ./my-course.tmx`,
	Args: cobra.ExactArgs(1),
	Run:  runLevelsShow,
}

func init() {
	levelsValidateCmd.Flags().BoolVar(&flagStrict, "strict", false, "Enforce layout density rules")

	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}

// courseFiles expands the arguments into course files.
func courseFiles(args []string) ([]string, error) {
	exts := formats.FormatExtensions()
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && slices.Contains(exts, strings.ToLower(filepath.Ext(p))) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	files, err := courseFiles(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No course files found.")
		return
	}

	failed := 0
	for _, f := range files {
		lvl, err := levels.LoadPath(f, flagStrict)
		if err != nil {
			failed++
			fmt.Printf("%s %s\n", failStyle.Render("FAIL"), f)
			for _, line := range problemLines(err) {
				fmt.Printf("     %s\n", line)
			}
			continue
		}
		fmt.Printf("%s   %s %s\n", okStyle.Render("OK"), f,
			dimStyle.Render(fmt.Sprintf("(%s, %dx%d, %d enemies)",
				lvl.ID, lvl.Grid.Width(), lvl.Grid.Height(), len(lvl.Entities))))
	}

	fmt.Println()
	fmt.Printf("%d of %d courses valid\n", len(files)-failed, len(files))
	if failed > 0 {
		os.Exit(1)
	}
}

// problemLines splits joined validation errors into one line each.
func problemLines(err error) []string {
	var lines []string
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			lines = append(lines, problemLines(e)...)
		}
		return lines
	}
	return strings.Split(err.Error(), "\n")
}

// loadCourse finds a course by file path or registered ID.
func loadCourse(arg string) (*world.Level, error) {
	if _, err := os.Stat(arg); err == nil {
		return levels.LoadPath(arg, false)
	}

	id, err := resolveCourse(arg)
	if err != nil {
		return nil, err
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	pg, ok := game.(*platformer.Game)
	if !ok {
		return nil, fmt.Errorf("%s is not a platformer course", arg)
	}
	return pg.Level(), nil
}

func runLevelsShow(_ *cobra.Command, args []string) {
	lvl, err := loadCourse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%s)\n", lvl.Name, lvl.ID)
	if lvl.Source != "" {
		fmt.Println(dimStyle.Render(lvl.Source))
	}
	fmt.Printf("size %dx%d  spawn (%d,%d)  flagpole x=%d rows %d-%d  enemies %d\n\n",
		lvl.Grid.Width(), lvl.Grid.Height(), lvl.Spawn.X, lvl.Spawn.Y,
		lvl.Goal.FlagPoleX, lvl.Goal.FlagTopRow, lvl.Goal.FlagBottomRow, len(lvl.Entities))

	for _, row := range courseMap(lvl) {
		fmt.Println(row)
	}
}

// courseMap renders the tile rows with markers for the spawn, enemies and flagpole.
func courseMap(lvl *world.Level) []string {
	cells := make([][]byte, lvl.Grid.Height())
	for y, row := range lvl.Grid.Rows() {
		cells[y] = []byte(row)
	}

	put := func(x, y int, b byte) {
		if y >= 0 && y < len(cells) && x >= 0 && x < len(cells[y]) {
			cells[y][x] = b
		}
	}

	for y := lvl.Goal.FlagTopRow; y <= lvl.Goal.FlagBottomRow; y++ {
		put(lvl.Goal.FlagPoleX, y, '|')
	}
	markers := map[world.EntityKind]byte{
		world.KindGoomba:  'g',
		world.KindKoopa:   'k',
		world.KindPiranha: 'p',
	}
	for _, e := range lvl.Entities {
		put(e.X, e.Y, markers[e.Kind])
	}
	put(lvl.Spawn.X, lvl.Spawn.Y, 'M')

	rows := make([]string, len(cells))
	for i, c := range cells {
		rows[i] = string(c)
	}
	return rows
}
