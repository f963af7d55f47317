package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// Values match the classic feel: 60 ticks per second, 16 px tiles.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:         0.25,
			Friction:        0.9,
			MinSpeed:        0.1,
			MaxFallSpeed:    7,
			MaxWalkSpeed:    2.5,
			MaxRunSpeed:     4.0,
			AccelWalk:       0.06,
			AccelRun:        0.1,
			JumpForce:       -6.5,
			JumpHoldGravity: 0.5,
		},
		Player: PlatformerPlayer{
			Width:          12,
			SmallHeight:    16,
			BigHeight:      32,
			DamageGrace:    120,
			StarDuration:   600,
			DeathHop:       -5,
			FallLimit:      300,
			StompBounce:    0.8,
			StompTolerance: 4,
		},
		Enemies: PlatformerEnemies{
			WalkSpeed:           0.5,
			FlatTicks:           30,
			ShellIdleTicks:      300,
			ShellSpeed:          3.5,
			PiranhaWaitTicks:    120,
			PiranhaRise:         24,
			PiranhaSpeed:        0.5,
			PiranhaSafeDistance: 32,
		},
		Items: PlatformerItems{
			EmergeSpeed:   0.8,
			MushroomSpeed: 1,
			StarSpeed:     1.5,
			StarBounce:    -3,
		},
		Scoring: PlatformerScoring{
			Stomp:      100,
			StarKill:   100,
			ShellKill:  200,
			Coin:       100,
			BrickBreak: 50,
			PowerUp:    1000,
		},
		Session: PlatformerSession{
			Lives:          3,
			Time:           400,
			TicksPerSecond: 60,
			FlagStepTicks:  3,
			FlagGraceTicks: 90,
			CameraLead:     0.4,
		},
	}
}

// DefaultPlatformerYAML returns the embedded default rules file.
func DefaultPlatformerYAML() []byte {
	return defaultPlatformerYAML
}
