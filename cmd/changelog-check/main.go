package main

import (
	"os"

	"github.com/ariel-frischer/changelog-check/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
