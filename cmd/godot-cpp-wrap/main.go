// Command godot-cpp-wrap prepares godot-cpp for use as an in-engine module.
//
// With no arguments it:
//   - resolves the latest godot-cpp and Godot engine tags
//   - fetches both and runs the godot-cpp bindings generator
//   - renders godot-cpp/meson.build
//   - maps every binding header to its engine header and writes the
//     module adaptor headers
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCLI().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
