package component

// LevelBounds is the pixel size of the loaded level. Bodies that drop below
// Height are sent back to their last safe position.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
