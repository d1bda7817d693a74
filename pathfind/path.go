package pathfind

// Path is a stack of waypoints with the next one on top.
type Path struct {
	stack []Point
}

// NewPath builds a path that yields points in travel order.
func NewPath(travel []Point) Path {
	stack := make([]Point, len(travel))
	for i, p := range travel {
		stack[len(travel)-1-i] = p
	}
	return Path{stack: stack}
}

func (p *Path) Pop() (Point, bool) {
	if len(p.stack) == 0 {
		return Point{}, false
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return top, true
}

func (p Path) Peek() (Point, bool) {
	if len(p.stack) == 0 {
		return Point{}, false
	}
	return p.stack[len(p.stack)-1], true
}

func (p Path) Len() int { return len(p.stack) }

func (p Path) Empty() bool { return len(p.stack) == 0 }

// Points returns the remaining waypoints in travel order.
func (p Path) Points() []Point {
	out := make([]Point, len(p.stack))
	for i := range p.stack {
		out[i] = p.stack[len(p.stack)-1-i]
	}
	return out
}
