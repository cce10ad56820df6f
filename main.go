// The main package for the linkforge executable.
package main

import (
	"github.com/linkforge/linkforge/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
