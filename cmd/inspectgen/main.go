// Command inspectgen generates C++ reflection boilerplate from .ins
// inspect sources.
package main

import (
	"os"

	"github.com/inspectgen/inspectgen/cmd/inspectgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
