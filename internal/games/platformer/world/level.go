package world

// Default flag rows used when a course does not specify them.
const (
	DefaultFlagTopRow    = 6
	DefaultFlagBottomRow = 14
)

// EntityKind names an entity variant.
type EntityKind string

const (
	KindMario    EntityKind = "mario"
	KindGoomba   EntityKind = "goomba"
	KindKoopa    EntityKind = "koopa"
	KindPiranha  EntityKind = "piranha"
	KindMushroom EntityKind = "mushroom"
	KindStar     EntityKind = "star"
)

// SpawnableKinds are the kinds a course may place in its spawn list.
var SpawnableKinds = []EntityKind{KindGoomba, KindKoopa, KindPiranha}

// IsSpawnable reports whether a course may place the kind.
func IsSpawnable(k EntityKind) bool {
	for _, s := range SpawnableKinds {
		if s == k {
			return true
		}
	}
	return false
}

// Point is a tile coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Goal locates the flagpole.
type Goal struct {
	FlagPoleX     int
	FlagTopRow    int
	FlagBottomRow int
}

// SpawnSpec places one enemy, in tile coordinates.
type SpawnSpec struct {
	Kind EntityKind
	X, Y int
}

// Bush is a decorative bush, W tiles wide.
type Bush struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
}

// Decor is scenery drawn by the renderer only; it never collides.
type Decor struct {
	Clouds []Point
	Bushes []Bush
	Castle *Point
}

// Level is a validated, ready-to-run course.
type Level struct {
	ID       string
	Name     string
	Grid     *Grid
	Spawn    Point
	Goal     Goal
	Entities []SpawnSpec
	Decor    Decor
	Source   string // File the course was loaded from, if any
}

// PixelWidth returns the course width in world pixels.
func (l *Level) PixelWidth() float64 {
	return float64(l.Grid.Width() * TileSize)
}
