package movement

// Tuning holds per-agent movement constants. Velocities are in world units
// per second with negative Y pointing up.
type Tuning struct {
	Speed               float64
	JumpVelocity        float64
	SmallJumpVelocity   float64
	TinyJumpVelocity    float64
	JumpHeightThreshold float64
	ArriveTolerance     float64
	// Deceleration is the per-tick drop in horizontal speed with no input.
	Deceleration float64
}

func PlayerTuning() Tuning {
	return Tuning{
		Speed:               300,
		JumpVelocity:        -450,
		SmallJumpVelocity:   -370,
		TinyJumpVelocity:    -270,
		JumpHeightThreshold: 120,
		ArriveTolerance:     5,
		Deceleration:        300,
	}
}

func SkeletonTuning() Tuning {
	t := PlayerTuning()
	t.JumpVelocity = -500
	t.SmallJumpVelocity = -390
	t.TinyJumpVelocity = -290
	return t
}

// Velocity returns the vertical impulse for a tier.
func (t Tuning) Velocity(tier JumpTier) float64 {
	switch tier {
	case TinyJump:
		return t.TinyJumpVelocity
	case SmallJump:
		return t.SmallJumpVelocity
	case FullJump:
		return t.JumpVelocity
	default:
		return 0
	}
}
