// Command deskkit is the helpdesk toolkit CLI.
package main

import (
	"os"

	"github.com/opencode-ai/deskkit/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
