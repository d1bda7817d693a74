package movement

import "github.com/milk9111/tilepath/pathfind"

// Target is either no waypoint or a specific one. The zero value is NoTarget.
type Target struct {
	point pathfind.Point
	set   bool
}

func NoTarget() Target { return Target{} }

func At(p pathfind.Point) Target { return Target{point: p, set: true} }

func (t Target) Point() (pathfind.Point, bool) { return t.point, t.set }

func (t Target) IsSet() bool { return t.set }

func (t Target) String() string {
	if !t.set {
		return "none"
	}
	return t.point.String()
}
