// Command combinectl scores athletic tests from the terminal and drives a
// running combine server with simulated squads.
package main

import (
	"os"

	"github.com/okian/combine/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
