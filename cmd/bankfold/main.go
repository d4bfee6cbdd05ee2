package main

import (
	"os"

	"github.com/bankfold-dev/bankfold/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
