package game

import "fmt"

// SquareType classifies what happens when a token lands on a square.
type SquareType int

const (
	SafeZone SquareType = iota // collision-immune; home bases are safe zones
	RunsSquare                 // scores run value x token level
	DotBall                    // nothing happens
	WicketSquare               // moving token loses a wicket and returns home
	ExtraSquare                // scores token level and grants another roll
)

func (t SquareType) String() string {
	switch t {
	case SafeZone:
		return "safe-zone"
	case RunsSquare:
		return "runs"
	case DotBall:
		return "dot-ball"
	case WicketSquare:
		return "wicket"
	case ExtraSquare:
		return "extra"
	default:
		panic(fmt.Sprintf("unknown square type %d", int(t)))
	}
}

// Square is one cell of the ring. The full board is fixed at process start
// and shared read-only by every game.
type Square struct {
	Index int
	Row   int
	Col   int
	Type  SquareType
	Value int   // run value, 0 unless Type is RunsSquare
	Owner Color // home-base owner, ColorNone unless a home base
}

// RingSize is the number of squares on the closed track.
const RingSize = 48

// quadrantSize is the stretch of track between two home bases.
const quadrantSize = RingSize / 4

// gridSize is the side of the square grid whose perimeter forms the ring.
const gridSize = 13

// quadrantPattern fixes the square mix of each 12-square stretch, offset
// from the stretch's home base. Run values are cricket scoring shots only
// (singles, twos, threes, boundaries); each stretch carries 18 runs, two
// wickets, two dot balls and one extra.
var quadrantPattern = [quadrantSize]struct {
	typ   SquareType
	value int
}{
	{SafeZone, 0},
	{RunsSquare, 1},
	{RunsSquare, 2},
	{DotBall, 0},
	{RunsSquare, 4},
	{WicketSquare, 0},
	{ExtraSquare, 0},
	{RunsSquare, 3},
	{DotBall, 0},
	{RunsSquare, 6},
	{WicketSquare, 0},
	{RunsSquare, 2},
}

// homeBases maps each color to its home-base square. The bases sit on the
// ring's corners, one quadrant apart in seating order.
var homeBases = map[Color]int{
	Blue:   0,
	Yellow: 12,
	Green:  24,
	Purple: 36,
}

var board = buildBoard()

// Board returns the shared 48-square ring. Callers must treat it as
// read-only.
func Board() []Square {
	return board
}

// SquareAt returns the square at a ring position.
func SquareAt(index int) Square {
	if index < 0 || index >= RingSize {
		panic(fmt.Sprintf("square index %d out of range", index))
	}
	return board[index]
}

// HomeBase returns the home-base square index for a color.
func HomeBase(c Color) int {
	base, ok := homeBases[c]
	if !ok {
		panic(fmt.Sprintf("unknown color %q", c))
	}
	return base
}

func buildBoard() []Square {
	squares := make([]Square, RingSize)
	for i := range squares {
		row, col := ringCoords(i)
		cell := quadrantPattern[i%quadrantSize]
		squares[i] = Square{
			Index: i,
			Row:   row,
			Col:   col,
			Type:  cell.typ,
			Value: cell.value,
			Owner: ColorNone,
		}
	}
	for color, base := range homeBases {
		squares[base].Owner = color
	}
	return squares
}

// ringCoords walks the perimeter of the 13x13 grid clockwise from the
// top-left corner, so the four home bases land on the corners.
func ringCoords(index int) (row, col int) {
	last := gridSize - 1
	switch {
	case index <= last:
		return 0, index
	case index <= 2*last:
		return index - last, last
	case index <= 3*last:
		return last, 3*last - index
	default:
		return 4*last - index, 0
	}
}
