// Package levels loads course files into playable world levels.
// It depends on world; world does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

//go:embed builtin
var builtinFS embed.FS

// Loader handles loading courses from a filesystem.
type Loader struct {
	FS     fs.FS
	Root   string      // Used in messages only
	Strict bool        // Enforce density rules
	Logger *log.Logger // Receives skipped files and parser warnings
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the courses compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadPath loads a single course file from disk.
func LoadPath(p string, strict bool) (*world.Level, error) {
	l := NewLoader(filepath.Dir(p))
	l.Strict = strict
	return l.LoadFile(filepath.Base(p))
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadAll recursively scans and loads all course files.
// Invalid files are logged and skipped. Courses are sorted by ID.
func (l *Loader) LoadAll() ([]*world.Level, error) {
	var levels []*world.Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.logger().Warn("skipping course", "file", p, "error", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads, validates and builds a single course.
func (l *Loader) LoadFile(p string) (*world.Level, error) {
	parsed, err := l.parse(p)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if parsed.ID == "" {
		parsed.ID = stem
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}

	if err := Validate(parsed, l.Strict); err != nil {
		return nil, fmt.Errorf("validating file %s: %w", p, err)
	}
	for _, w := range parsed.Warnings {
		l.logger().Warn("course warning", "course", parsed.ID, "warning", w)
	}

	return &world.Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     world.NewGrid(parsed.Rows),
		Spawn:    parsed.Spawn,
		Goal:     parsed.Goal,
		Entities: parsed.Entities,
		Decor:    parsed.Decor,
		Source:   path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific course by ID.
func (l *Loader) LoadByID(id string) (*world.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return nil, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all course IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parse routes to the correct parser by extension.
func (l *Loader) parse(p string) (formats.Level, error) {
	ext := strings.ToLower(path.Ext(p))
	if ext == ".tmx" {
		return formats.ParseTMX(l.FS, p)
	}

	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return formats.Level{}, err
	}

	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".json":
		return formats.ParseJSON(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
