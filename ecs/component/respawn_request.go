package component

// RespawnRequest marks an agent that left the level. The respawn system moves
// it back to its SafeRespawn position and clears its path.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
