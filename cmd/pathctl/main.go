// Command pathctl inspects levels and their navigation graphs from the
// terminal: dump the graph, query paths, draw the map and run the
// simulation headless.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
