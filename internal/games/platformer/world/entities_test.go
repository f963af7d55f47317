package world

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// enemySession returns a session on flat ground with Mario at (2,13) and the
// given spawns.
func enemySession(t *testing.T, rules config.PlatformerConfig, spawns ...SpawnSpec) *Session {
	t.Helper()
	return newTestSession(t, newTestLevel(flatRows(64), Point{2, 13}, spawns...), rules)
}

func TestGoombaStomp(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindGoomba, X: 10, Y: 13})
	g := s.Entities()[1].(*Goomba)

	// Drop Mario onto the Goomba
	mb := s.Mario().Body()
	mb.X, mb.Y, mb.VY = 160, 190, 3

	s.Update(Input{})

	if !g.Flat || !g.Body().Dead {
		t.Fatalf("Goomba flat = %v dead = %v, expected flattened", g.Flat, g.Body().Dead)
	}
	if g.FlatTimer != rules.Enemies.FlatTicks {
		t.Errorf("FlatTimer = %d, expected %d", g.FlatTimer, rules.Enemies.FlatTicks)
	}
	if want := rules.Physics.JumpForce * rules.Player.StompBounce; mb.VY != want {
		t.Errorf("Mario VY = %v, expected bounce %v", mb.VY, want)
	}
	if s.Score() != rules.Scoring.Stomp {
		t.Errorf("Score() = %d, expected %d", s.Score(), rules.Scoring.Stomp)
	}
	if mb.Dead {
		t.Error("stomping should not hurt Mario")
	}
	if rd := g.RenderData(0); rd.Sprite != "goomba_flat" || rd.Hidden {
		t.Errorf("RenderData() = %+v, expected visible goomba_flat", rd)
	}

	for i := 0; i < rules.Enemies.FlatTicks; i++ {
		s.Update(Input{})
	}
	if len(s.Entities()) != 2 {
		t.Fatalf("flattened Goomba removed too early")
	}
	s.Update(Input{})
	if len(s.Entities()) != 1 {
		t.Errorf("len(Entities()) = %d, expected the flat Goomba removed", len(s.Entities()))
	}
}

func TestStompTolerance(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	tests := []struct {
		name   string
		offset float64 // Mario's bottom before the step, relative to the enemy top
		vy     float64
		stomp  bool
	}{
		{"well above", -3, 5, true},
		{"at tolerance", 4, 2, true},
		{"past tolerance", 4.5, 2, false},
		{"moving up", 6, -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := enemySession(t, rules, SpawnSpec{Kind: KindGoomba, X: 10, Y: 13})
			g := s.Entities()[1].(*Goomba)
			mb := s.Mario().Body()
			mb.X = g.Body().X
			mb.VY = tt.vy
			mb.Y = g.Body().Y + tt.offset - mb.H + tt.vy
			if !mb.Overlaps(g.Body()) {
				t.Fatalf("setup: Mario %+v does not touch Goomba %+v", mb.Rect(), g.Body().Rect())
			}

			tick := s.newTick(Input{})
			contactMario(tick, g)
			s.apply(tick)

			if g.Flat != tt.stomp {
				t.Errorf("Goomba flat = %v, expected %v", g.Flat, tt.stomp)
			}
			if mb.Dead == tt.stomp {
				t.Errorf("Mario dead = %v, expected %v", mb.Dead, !tt.stomp)
			}
		})
	}
}

func TestSideContactHurtsMario(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindGoomba, X: 10, Y: 13})
	s.Mario().Body().X = 150

	s.Update(Input{})

	if !s.Mario().Body().Dead {
		t.Fatal("small Mario touching a Goomba from the side should die")
	}
	if s.Lives() != rules.Session.Lives-1 {
		t.Errorf("Lives() = %d, expected %d", s.Lives(), rules.Session.Lives-1)
	}
	if vy := s.Mario().Body().VY; vy >= 0 {
		t.Errorf("dead Mario VY = %v, expected the death hop", vy)
	}
}

func TestTakeDamage(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules)
	m := s.Mario()
	m.Power = PowerBig
	m.Body().H = rules.Player.BigHeight
	m.Body().Y = 192

	tick := s.newTick(Input{})
	m.TakeDamage(tick)
	m.TakeDamage(tick) // ignored during grace
	s.apply(tick)

	if m.Power != PowerSmall {
		t.Errorf("Power = %s, expected SMALL", m.Power)
	}
	if m.Body().H != rules.Player.SmallHeight || m.Body().Y != 208 {
		t.Errorf("body H = %v Y = %v, expected 16 at 208", m.Body().H, m.Body().Y)
	}
	if m.Grace != rules.Player.DamageGrace {
		t.Errorf("Grace = %d, expected %d", m.Grace, rules.Player.DamageGrace)
	}
	if m.Body().Dead || s.Lives() != rules.Session.Lives {
		t.Errorf("dead = %v lives = %d, expected alive with no life lost", m.Body().Dead, s.Lives())
	}
	if n := countEvent(s.DrainEvents(), EventDamage); n != 1 {
		t.Errorf("damage events = %d, expected 1", n)
	}
}

func TestTakeDamageWhileStarred(t *testing.T) {
	s := enemySession(t, config.DefaultPlatformerConfig())
	m := s.Mario()
	m.StarTime = 10

	tick := s.newTick(Input{})
	m.TakeDamage(tick)
	s.apply(tick)

	if m.Body().Dead {
		t.Error("star power should block damage")
	}
}

func TestDieOnlyOnce(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules)
	m := s.Mario()

	tick := s.newTick(Input{})
	m.Die(tick)
	m.Die(tick)
	s.apply(tick)

	if s.Lives() != rules.Session.Lives-1 {
		t.Errorf("Lives() = %d, expected one life lost", s.Lives())
	}
	if m.Body().VX != 0 || m.Body().VY != rules.Player.DeathHop {
		t.Errorf("VX = %v VY = %v, expected 0 and %v", m.Body().VX, m.Body().VY, rules.Player.DeathHop)
	}
}

func TestStarKillsOnContact(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindGoomba, X: 10, Y: 13})
	s.Mario().StarTime = 100
	s.Mario().Body().X = 150

	s.Update(Input{})

	g := s.Entities()[1].(*Goomba)
	if !g.Body().Dead || g.Flat {
		t.Errorf("Goomba dead = %v flat = %v, expected killed without flattening", g.Body().Dead, g.Flat)
	}
	if s.Mario().Body().Dead {
		t.Error("starred Mario should survive")
	}
	if s.Score() != rules.Scoring.StarKill {
		t.Errorf("Score() = %d, expected %d", s.Score(), rules.Scoring.StarKill)
	}

	s.Update(Input{})
	if len(s.Entities()) != 1 {
		t.Errorf("killed Goomba should be removed, %d entities left", len(s.Entities()))
	}
}

func TestStarKillsPiranha(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindPiranha, X: 10, Y: 12})
	p := s.Entities()[1].(*Piranha)
	p.State = PiranhaUp
	p.Body().Y = p.BaseY - rules.Enemies.PiranhaRise
	m := s.Mario()
	m.StarTime = 100
	mb := m.Body()
	mb.X = p.Body().X
	mb.VY = 2
	mb.Y = p.Body().Y - mb.H + 4

	tick := s.newTick(Input{})
	contactMario(tick, p)
	s.apply(tick)

	if !p.Body().Dead {
		t.Error("starred Mario should kill a piranha plant")
	}
	if mb.Dead {
		t.Error("starred Mario should survive")
	}
	if s.Score() != rules.Scoring.StarKill {
		t.Errorf("Score() = %d, expected %d", s.Score(), rules.Scoring.StarKill)
	}
}

func TestKoopaShellStates(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindKoopa, X: 10, Y: 13})
	k := s.Entities()[1].(*Koopa)
	tick := s.newTick(Input{})

	k.stomped(tick)
	if k.State != KoopaShellIdle {
		t.Fatalf("State = %s, expected SHELL_IDLE", k.State)
	}
	if k.Body().H != shellHeight || k.Body().Y != 208 {
		t.Errorf("shell H = %v Y = %v, expected 16 at 208", k.Body().H, k.Body().Y)
	}
	if k.ShellTimer != rules.Enemies.ShellIdleTicks {
		t.Errorf("ShellTimer = %d, expected %d", k.ShellTimer, rules.Enemies.ShellIdleTicks)
	}

	// Mario is to the left, so the shell slides right
	k.stomped(tick)
	if k.State != KoopaShellSlide {
		t.Fatalf("State = %s, expected SHELL_SLIDE", k.State)
	}
	if k.Body().VX != rules.Enemies.ShellSpeed {
		t.Errorf("VX = %v, expected %v away from Mario", k.Body().VX, rules.Enemies.ShellSpeed)
	}

	k.stomped(tick)
	if k.State != KoopaShellIdle || k.Body().VX != 0 {
		t.Errorf("State = %s VX = %v, expected a stopped shell", k.State, k.Body().VX)
	}
	if rd := k.RenderData(0); rd.Sprite != "koopa_shell" {
		t.Errorf("RenderData().Sprite = %q, expected koopa_shell", rd.Sprite)
	}
}

func TestKoopaLeavesShell(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindKoopa, X: 10, Y: 13})
	k := s.Entities()[1].(*Koopa)
	k.stomped(s.newTick(Input{}))
	k.ShellTimer = 1

	s.Update(Input{})

	if k.State != KoopaWalk {
		t.Fatalf("State = %s, expected WALK", k.State)
	}
	if k.Body().H != koopaHeight || k.Body().Y != 200 {
		t.Errorf("H = %v Y = %v, expected 24 at 200", k.Body().H, k.Body().Y)
	}
	if k.Body().VX != -rules.Enemies.WalkSpeed {
		t.Errorf("VX = %v, expected %v", k.Body().VX, -rules.Enemies.WalkSpeed)
	}
}

func TestSlidingShellKillsEnemies(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules,
		SpawnSpec{Kind: KindKoopa, X: 10, Y: 13},
		SpawnSpec{Kind: KindGoomba, X: 20, Y: 13},
		SpawnSpec{Kind: KindGoomba, X: 40, Y: 13},
	)
	k := s.Entities()[1].(*Koopa)
	near := s.Entities()[2].(*Goomba)
	far := s.Entities()[3].(*Goomba)
	k.State = KoopaShellSlide
	k.Body().H = shellHeight
	k.Body().Y = 208
	k.Body().VX = rules.Enemies.ShellSpeed
	near.Body().X = k.Body().X + 8

	s.Update(Input{})

	if !near.Body().Dead {
		t.Error("overlapped Goomba should be killed by the shell")
	}
	if far.Body().Dead {
		t.Error("distant Goomba should survive")
	}
	if k.Body().Dead || s.Mario().Body().Dead {
		t.Error("the sweep must skip the shell itself and Mario")
	}
	if s.Score() != rules.Scoring.ShellKill {
		t.Errorf("Score() = %d, expected %d", s.Score(), rules.Scoring.ShellKill)
	}
}

func TestPiranhaCycle(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindPiranha, X: 30, Y: 12})
	p := s.Entities()[1].(*Piranha)
	base := p.BaseY
	wait := rules.Enemies.PiranhaWaitTicks
	travel := int(rules.Enemies.PiranhaRise / rules.Enemies.PiranhaSpeed)

	if rd := p.RenderData(0); !rd.Hidden {
		t.Error("hidden plant should not be drawn")
	}

	steps := []struct {
		ticks int
		state PiranhaState
		y     float64
	}{
		{wait - 1, PiranhaHidden, base},
		{1, PiranhaRising, base},
		{travel, PiranhaUp, base - rules.Enemies.PiranhaRise},
		{wait, PiranhaFalling, base - rules.Enemies.PiranhaRise},
		{travel, PiranhaHidden, base},
	}
	for i, step := range steps {
		for n := 0; n < step.ticks; n++ {
			s.Update(Input{})
		}
		if p.State != step.state {
			t.Fatalf("step %d: State = %s, expected %s", i, p.State, step.state)
		}
		if p.Body().Y != step.y {
			t.Errorf("step %d: Y = %v, expected %v", i, p.Body().Y, step.y)
		}
	}
}

func TestPiranhaStaysHiddenNearMario(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindPiranha, X: 3, Y: 12})
	p := s.Entities()[1].(*Piranha)

	for i := 0; i < rules.Enemies.PiranhaWaitTicks*2; i++ {
		s.Update(Input{})
	}
	if p.State != PiranhaHidden {
		t.Errorf("State = %s, expected HIDDEN while Mario is within %v px", p.State, rules.Enemies.PiranhaSafeDistance)
	}
}

func TestPiranhaStompHurtsMario(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	s := enemySession(t, rules, SpawnSpec{Kind: KindPiranha, X: 10, Y: 12})
	p := s.Entities()[1].(*Piranha)
	p.State = PiranhaUp
	p.Body().Y = p.BaseY - rules.Enemies.PiranhaRise
	mb := s.Mario().Body()
	mb.X = p.Body().X
	mb.VY = 2
	mb.Y = p.Body().Y - mb.H + 2 + 2

	tick := s.newTick(Input{})
	contactMario(tick, p)
	s.apply(tick)

	if p.Body().Dead {
		t.Error("a plain stomp should not kill a piranha plant")
	}
	if !mb.Dead {
		t.Error("stomping a piranha plant should hurt Mario")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected no stomp points", s.Score())
	}
}

func TestMushroomReversesAtWall(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	g := gridWithGround(20, Point{5, 13})
	m := NewMushroom(3, 13, &rules)
	m.Emerging = false
	m.Body().X = 60
	m.Body().Y = 208
	m.Body().VX = rules.Items.MushroomSpeed
	tick := &Tick{Grid: g, Rules: &rules}

	for i := 0; i < 10; i++ {
		m.Update(tick)
	}

	if m.Body().VX != -rules.Items.MushroomSpeed {
		t.Errorf("VX = %v, expected %v after the wall", m.Body().VX, -rules.Items.MushroomSpeed)
	}
	if m.Body().X+m.Body().W > 80 {
		t.Errorf("X = %v, mushroom entered the wall", m.Body().X)
	}
}

func TestMushroomEmerges(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	m := NewMushroom(3, 9, &rules)
	tick := &Tick{Grid: gridWithGround(20), Rules: &rules}

	if m.Body().Y != 160 {
		t.Fatalf("start Y = %v, expected inside the block at 160", m.Body().Y)
	}
	for i := 0; i < 30 && m.Emerging; i++ {
		m.Update(tick)
		if m.Emerging && m.Body().VX != 0 {
			t.Fatal("mushroom should not move sideways while emerging")
		}
	}
	if m.Emerging {
		t.Fatal("mushroom should finish emerging")
	}
	if m.Body().Y != m.TargetY {
		t.Errorf("Y = %v, expected %v", m.Body().Y, m.TargetY)
	}
	if m.Body().VX != rules.Items.MushroomSpeed {
		t.Errorf("VX = %v, expected %v", m.Body().VX, rules.Items.MushroomSpeed)
	}
}

func TestStarBounces(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	star := NewStar(3, 12, &rules)
	star.Emerging = false
	star.Body().VX = rules.Items.StarSpeed
	tick := &Tick{Grid: gridWithGround(40), Rules: &rules}

	bounces := 0
	for i := 0; i < 120; i++ {
		star.Update(tick)
		if star.Body().Grounded {
			bounces++
			if star.Body().VY != rules.Items.StarBounce {
				t.Fatalf("tick %d: VY = %v after landing, expected %v", i, star.Body().VY, rules.Items.StarBounce)
			}
		}
	}
	if bounces < 2 {
		t.Errorf("bounces = %d, expected the star to keep bouncing", bounces)
	}
}

func TestMarioRenderData(t *testing.T) {
	rules := config.DefaultPlatformerConfig()
	tests := []struct {
		name   string
		setup  func(m *Mario)
		frame  int
		sprite string
		hidden bool
		flip   bool
	}{
		{"standing", func(m *Mario) { m.body.Grounded = true }, 0, "mario_small_stand", false, false},
		{"airborne", func(m *Mario) {}, 0, "mario_small_jump", false, false},
		{"big walking", func(m *Mario) {
			m.Power = PowerBig
			m.body.Grounded = true
			m.body.VX = 2
		}, 0, "mario_big_walk1", false, false},
		{"walk frame", func(m *Mario) {
			m.body.Grounded = true
			m.body.VX = -2
			m.body.FacingRight = false
			m.anim = 10
		}, 0, "mario_small_walk3", false, true},
		{"dead", func(m *Mario) { m.body.Dead = true }, 0, "mario_small_die", false, false},
		{"grace blink off", func(m *Mario) {
			m.body.Grounded = true
			m.Grace = 50
		}, 0, "mario_small_stand", true, false},
		{"grace blink on", func(m *Mario) {
			m.body.Grounded = true
			m.Grace = 50
		}, 6, "mario_small_stand", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMario(0, 0, &rules)
			tt.setup(m)
			rd := m.RenderData(tt.frame)
			if rd.Sprite != tt.sprite {
				t.Errorf("Sprite = %q, expected %q", rd.Sprite, tt.sprite)
			}
			if rd.Hidden != tt.hidden {
				t.Errorf("Hidden = %v, expected %v", rd.Hidden, tt.hidden)
			}
			if rd.FlipX != tt.flip {
				t.Errorf("FlipX = %v, expected %v", rd.FlipX, tt.flip)
			}
		})
	}
}
