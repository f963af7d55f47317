package core

// RuntimeConfig is what the platform tells a game when it starts: the
// terminal size and the fixed tick rate. The simulation is deterministic,
// so nothing else is needed to reproduce a run.
type RuntimeConfig struct {
	ScreenW  int // Columns
	ScreenH  int // Rows
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a run the platform shows and records.
type GameState struct {
	Score    int
	Coins    int
	TimeLeft int // Course clock in seconds
	GameOver bool
	Cleared  bool // The flag was reached and the clear sequence finished
	Paused   bool
}

// Finished reports whether the run reached a result worth recording.
func (s GameState) Finished() bool {
	return s.GameOver || s.Cleared
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State  GameState
	Events []string // Cues raised during the tick, oldest first
}
