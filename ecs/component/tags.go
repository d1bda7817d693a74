package component

import "image/color"

// AgentTag names the prefab an agent was built from.
type AgentTag struct {
	Kind string
}

var AgentTagComponent = NewComponent[AgentTag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type SkeletonTag struct{}

var SkeletonTagComponent = NewComponent[SkeletonTag]()

type DebugColor struct {
	Color color.Color
}

var DebugColorComponent = NewComponent[DebugColor]()
