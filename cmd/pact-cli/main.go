package main

import (
	"os"

	"github.com/YOU54F/pact-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
