// Package geom holds the board geometry shared by the placement validator
// and the solver: positions, rotations, resource vectors, product recipes,
// and the per-building footprint/adjacency templates.
package geom

import "fmt"

// MaxBoardSize bounds both board dimensions.
const MaxBoardSize = 100

// FactorySize is the side length of a Factory's square footprint.
const FactorySize = 5

// Pos is a signed board coordinate.
type Pos struct {
	X, Y int8
}

// P constructs a Pos.
func P(x, y int8) Pos { return Pos{X: x, Y: y} }

// Add returns the componentwise sum.
func (p Pos) Add(q Pos) Pos { return Pos{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the componentwise difference.
func (p Pos) Sub(q Pos) Pos { return Pos{X: p.X - q.X, Y: p.Y - q.Y} }

// Off returns p shifted by (dx, dy).
func (p Pos) Off(dx, dy int8) Pos { return Pos{X: p.X + dx, Y: p.Y + dy} }

// ManhattanLen returns |x| + |y|.
func (p Pos) ManhattanLen() int {
	x, y := int(p.X), int(p.Y)
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	return x + y
}

// Rot90 rotates the vector 90 degrees.
func (p Pos) Rot90() Pos { return Pos{X: p.Y, Y: -p.X} }

func (p Pos) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Rotation selects one of the four stamp/adjacency templates for a
// directional building. The numeric value is also the wire encoding used
// by the task codec: 0:Right, 1:Down, 2:Left, 3:Up.
type Rotation uint8

const (
	RotRight Rotation = 0
	RotDown  Rotation = 1
	RotLeft  Rotation = 2
	RotUp    Rotation = 3
)

func (r Rotation) String() string {
	switch r {
	case RotRight:
		return "Right"
	case RotDown:
		return "Down"
	case RotLeft:
		return "Left"
	case RotUp:
		return "Up"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the four defined rotations.
func (r Rotation) Valid() bool { return r <= RotUp }
