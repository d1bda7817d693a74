package common

const (
	TileSize = 32

	// Gravity is in pixels per second squared.
	Gravity = 980.0

	// TickRate is the number of fixed simulation steps per second.
	TickRate = 60
)
