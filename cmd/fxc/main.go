// Command fxc is the FX shader compiler CLI.
//
// Usage:
//
//	fxc [flags] <input.fx>
//	fxc <command> [flags] <file>
//
// Examples:
//
//	fxc basic.fx                        # Write basic.fx_<shader>.{vert.glsl,frag.glsl,meta}
//	fxc --out-dir build basic.fx        # Write artifacts to build/
//	fxc tokens basic.fx                 # Dump the token stream
//	fxc ast --format yaml basic.fx      # Dump the parsed shaders
//	fxc inspect basic.fx_Basic.meta     # Show what a loader reads from metadata
//	fxc watch basic.fx                  # Recompile on every save
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
