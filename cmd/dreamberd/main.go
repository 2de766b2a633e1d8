// Command dreamberd runs the DreamBerd language runtime core from the
// command line (spec.md §1/§6: the host entry point is an external
// collaborator, not part of the core).
package main

import (
	"fmt"
	"os"

	"github.com/dreamberd-lang/dreamberd/cmd/dreamberd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
