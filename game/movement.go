package game

// Direction of travel around the ring.
type Direction string

const (
	Clockwise     Direction = "clockwise"
	AntiClockwise Direction = "anticlockwise"
)

func validDirection(d Direction) bool {
	return d == Clockwise || d == AntiClockwise
}

// step advances one square in the given direction, wrapping the ring.
func step(pos int, dir Direction) int {
	if dir == AntiClockwise {
		return (pos + RingSize - 1) % RingSize
	}
	return (pos + 1) % RingSize
}

// MovementPath computes the squares a token visits moving the given number
// of steps from start. The path holds exactly steps entries, excludes the
// starting square, and ends on the landing square.
func MovementPath(start, steps int, dir Direction) []int {
	path := make([]int, 0, steps)
	pos := start
	for i := 0; i < steps; i++ {
		pos = step(pos, dir)
		path = append(path, pos)
	}
	return path
}

// ReturnPath computes the squares a captured or dismissed token travels
// through on its way back to home, ending on home. When anti-clockwise
// play is disabled the token rewinds anti-clockwise, retracing the only
// direction it could have come from. Otherwise it takes the shorter way
// around, clockwise on a tie.
func ReturnPath(from, home int, s Settings) []int {
	if from == home {
		return nil
	}
	dir := AntiClockwise
	if s.AllowAntiClockwise {
		cw := (home - from + RingSize) % RingSize
		acw := (from - home + RingSize) % RingSize
		if cw <= acw {
			dir = Clockwise
		}
	}
	path := make([]int, 0, RingSize)
	pos := from
	for pos != home {
		pos = step(pos, dir)
		path = append(path, pos)
	}
	return path
}
