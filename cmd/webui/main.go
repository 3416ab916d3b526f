// Command webui fetches and configures the prebuilt webui library used by
// the Go binding.
package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/webui/cmd/webui/commands"
)

func main() {
	if err := commands.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
