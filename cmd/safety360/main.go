package main

import (
	"os"

	"github.com/Makepad-fr/safety360/internal/cli"
	"github.com/Makepad-fr/safety360/internal/ui"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		ui.Fail(err.Error())
	}
	os.Exit(cli.ExitCode(err))
}
