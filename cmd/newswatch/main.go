package main

import (
	"os"

	"github.com/meridian-research/newswatch/cmd/newswatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
