package pathfind

const (
	DefaultJumpDistance     = 5
	DefaultJumpHeight       = 4
	DefaultMaxFallScanDepth = 500
)

// Config holds the reach limits used when connecting points. Distances are in
// grid cells.
type Config struct {
	// JumpDistance bounds jumps between platform edges.
	JumpDistance int
	// JumpHeight is the tallest drop an agent can jump back up.
	JumpHeight int
	// MaxFallScanDepth is how many rows are scanned below an edge for a landing.
	MaxFallScanDepth int
}

func DefaultConfig() Config {
	return Config{
		JumpDistance:     DefaultJumpDistance,
		JumpHeight:       DefaultJumpHeight,
		MaxFallScanDepth: DefaultMaxFallScanDepth,
	}
}

func (c Config) withDefaults() Config {
	if c.JumpDistance <= 0 {
		c.JumpDistance = DefaultJumpDistance
	}
	if c.JumpHeight <= 0 {
		c.JumpHeight = DefaultJumpHeight
	}
	if c.MaxFallScanDepth <= 0 {
		c.MaxFallScanDepth = DefaultMaxFallScanDepth
	}
	return c
}
