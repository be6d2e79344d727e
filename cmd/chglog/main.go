package main

import (
	"os"

	"github.com/ariel-frischer/chglog/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
