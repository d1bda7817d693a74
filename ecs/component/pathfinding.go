package component

import "github.com/milk9111/tilepath/movement"

// PathFollower drives an agent along waypoints supplied by Source.
type PathFollower struct {
	Executor *movement.Executor
	Source   movement.WaypointSource
	// Intent is the output of the last follow step, applied by physics.
	Intent   movement.Intent
	Requests int
}

var PathFollowerComponent = NewComponent[PathFollower]()
