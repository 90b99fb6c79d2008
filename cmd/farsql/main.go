// Command farsql is the CLI for the farsql execution layer.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/farsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
