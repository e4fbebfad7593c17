package main

import (
	"os"

	"github.com/rl1809/ecoscene/cmd/ecoscene/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
