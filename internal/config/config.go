// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

import "fmt"

// PlatformerConfig contains all tunable rules for the platformer simulation.
// Units are world pixels (one tile is 16 px) and simulation ticks.
type PlatformerConfig struct {
	Physics PlatformerPhysics `yaml:"physics"`
	Player  PlatformerPlayer  `yaml:"player"`
	Enemies PlatformerEnemies `yaml:"enemies"`
	Items   PlatformerItems   `yaml:"items"`
	Scoring PlatformerScoring `yaml:"scoring"`
	Session PlatformerSession `yaml:"session"`
}

// PlatformerPhysics defines movement parameters shared by every body.
type PlatformerPhysics struct {
	Gravity         float64 `yaml:"gravity"`
	Friction        float64 `yaml:"friction"`
	MinSpeed        float64 `yaml:"min_speed"` // Below this |vx| snaps to 0 while coasting
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	MaxWalkSpeed    float64 `yaml:"max_walk_speed"`
	MaxRunSpeed     float64 `yaml:"max_run_speed"`
	AccelWalk       float64 `yaml:"accel_walk"`
	AccelRun        float64 `yaml:"accel_run"`
	JumpForce       float64 `yaml:"jump_force"`        // Negative = up
	JumpHoldGravity float64 `yaml:"jump_hold_gravity"` // Gravity multiplier while jump is held
}

// PlatformerPlayer defines Mario's body and damage rules.
type PlatformerPlayer struct {
	Width          float64 `yaml:"width"`
	SmallHeight    float64 `yaml:"small_height"`
	BigHeight      float64 `yaml:"big_height"`
	DamageGrace    int     `yaml:"damage_grace"`    // Ticks of flicker after losing power
	StarDuration   int     `yaml:"star_duration"`   // Ticks of star invincibility
	DeathHop       float64 `yaml:"death_hop"`       // vy applied on death
	FallLimit      float64 `yaml:"fall_limit"`      // y beyond which Mario dies / restarts
	StompBounce    float64 `yaml:"stomp_bounce"`    // Fraction of jump force after a stomp
	StompTolerance float64 `yaml:"stomp_tolerance"` // Px above an enemy's top that still counts
}

// PlatformerEnemies defines enemy behavior parameters.
type PlatformerEnemies struct {
	WalkSpeed           float64 `yaml:"walk_speed"`
	FlatTicks           int     `yaml:"flat_ticks"`
	ShellIdleTicks      int     `yaml:"shell_idle_ticks"`
	ShellSpeed          float64 `yaml:"shell_speed"`
	PiranhaWaitTicks    int     `yaml:"piranha_wait_ticks"`
	PiranhaRise         float64 `yaml:"piranha_rise"`
	PiranhaSpeed        float64 `yaml:"piranha_speed"`
	PiranhaSafeDistance float64 `yaml:"piranha_safe_distance"`
}

// PlatformerItems defines power-up movement.
type PlatformerItems struct {
	EmergeSpeed   float64 `yaml:"emerge_speed"`
	MushroomSpeed float64 `yaml:"mushroom_speed"`
	StarSpeed     float64 `yaml:"star_speed"`
	StarBounce    float64 `yaml:"star_bounce"`
}

// PlatformerScoring defines points awarded per event.
type PlatformerScoring struct {
	Stomp      int `yaml:"stomp"`
	StarKill   int `yaml:"star_kill"`
	ShellKill  int `yaml:"shell_kill"`
	Coin       int `yaml:"coin"`
	BrickBreak int `yaml:"brick_break"`
	PowerUp    int `yaml:"power_up"`
}

// PlatformerSession defines course-level rules.
type PlatformerSession struct {
	Lives          int     `yaml:"lives"`
	Time           int     `yaml:"time"`             // Course clock in seconds
	TicksPerSecond int     `yaml:"ticks_per_second"` // Ticks per clock second
	FlagStepTicks  int     `yaml:"flag_step_ticks"`
	FlagGraceTicks int     `yaml:"flag_grace_ticks"`
	CameraLead     float64 `yaml:"camera_lead"` // Fraction of the view kept left of Mario
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset maps a CLI value to a preset.
// An empty string yields "" (use the config as loaded).
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}
