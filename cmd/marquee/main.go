// Command marquee runs the portfolio marquee page in a terminal and renders
// it to animated GIFs.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/marquee/cmd/marquee/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
