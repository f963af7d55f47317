package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available courses",
	Long:  `Shows every built-in course plus those loaded with --levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	courses := registry.ListPrefix(platformer.IDPrefix)

	if len(courses) == 0 {
		fmt.Println("No courses available.")
		return
	}

	fmt.Println("Available courses:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range courses {
		maxIDLen = max(maxIDLen, len(courseName(c.ID)))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, c := range courses {
		fmt.Printf("  %-*s  %s\n", maxIDLen, courseName(c.ID), c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a course.")
}

// resolveCourse turns "1-1" or "platformer-1-1" into a registry ID.
func resolveCourse(arg string) (string, error) {
	id := arg
	if !strings.HasPrefix(id, platformer.IDPrefix) {
		id = platformer.GameID(arg)
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown course %q, run 'platformer list' to see available courses", arg)
	}
	return id, nil
}

// courseName strips the registry prefix for display.
func courseName(id string) string {
	return strings.TrimPrefix(id, platformer.IDPrefix)
}
