package game

import "testing"

func TestBoardGeometry(t *testing.T) {
	b := Board()
	if len(b) != RingSize {
		t.Fatalf("board has %d squares, want %d", len(b), RingSize)
	}

	// Every square sits on the grid perimeter, no cell used twice.
	seen := map[[2]int]bool{}
	for _, sq := range b {
		onEdge := sq.Row == 0 || sq.Row == gridSize-1 || sq.Col == 0 || sq.Col == gridSize-1
		if !onEdge {
			t.Errorf("square %d at (%d,%d) is not on the perimeter", sq.Index, sq.Row, sq.Col)
		}
		cell := [2]int{sq.Row, sq.Col}
		if seen[cell] {
			t.Errorf("cell (%d,%d) used twice", sq.Row, sq.Col)
		}
		seen[cell] = true
	}

	// Consecutive squares are grid neighbors, wrap included.
	for i := range b {
		next := b[(i+1)%RingSize]
		dr := abs(b[i].Row - next.Row)
		dc := abs(b[i].Col - next.Col)
		if dr+dc != 1 {
			t.Errorf("squares %d and %d are not adjacent on the grid", b[i].Index, next.Index)
		}
	}
}

func TestBoardHomeBases(t *testing.T) {
	last := gridSize - 1
	corners := map[Color][2]int{
		Blue:   {0, 0},
		Yellow: {0, last},
		Green:  {last, last},
		Purple: {last, 0},
	}
	for _, c := range SeatOrder {
		base := HomeBase(c)
		sq := SquareAt(base)
		if sq.Type != SafeZone {
			t.Errorf("%s home base %d is a %s, want safe zone", c, base, sq.Type)
		}
		if sq.Owner != c {
			t.Errorf("home base %d owned by %q, want %q", base, sq.Owner, c)
		}
		if want := corners[c]; sq.Row != want[0] || sq.Col != want[1] {
			t.Errorf("%s home base at (%d,%d), want corner (%d,%d)", c, sq.Row, sq.Col, want[0], want[1])
		}
	}
	// Bases are one quadrant apart.
	for i, c := range SeatOrder {
		if got, want := HomeBase(c), i*quadrantSize; got != want {
			t.Errorf("%s home base at %d, want %d", c, got, want)
		}
	}
}

func TestBoardSquareMix(t *testing.T) {
	counts := map[SquareType]int{}
	for _, sq := range Board() {
		counts[sq.Type]++
	}
	wantCounts := map[SquareType]int{
		SafeZone:     4,
		RunsSquare:   24,
		DotBall:      8,
		WicketSquare: 8,
		ExtraSquare:  4,
	}
	for typ, want := range wantCounts {
		if counts[typ] != want {
			t.Errorf("%d %s squares, want %d", counts[typ], typ, want)
		}
	}

	// Each quadrant scores the same 18 runs, so no seat gets a richer
	// stretch of track.
	for q := 0; q < 4; q++ {
		runs := 0
		for i := 0; i < quadrantSize; i++ {
			runs += SquareAt(q*quadrantSize + i).Value
		}
		if runs != 18 {
			t.Errorf("quadrant %d scores %d runs, want 18", q, runs)
		}
	}
}

func TestSquareAtPanicsOffBoard(t *testing.T) {
	for _, index := range []int{-1, RingSize, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SquareAt(%d) did not panic", index)
				}
			}()
			SquareAt(index)
		}()
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
