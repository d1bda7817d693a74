package pathfind

import "errors"

// ErrRegistryCorrupt means the point registry and the search graph disagree.
// It indicates a construction bug, never bad input.
var ErrRegistryCorrupt = errors.New("pathfind: point registry out of sync with graph")
