package main

import (
	"os"

	"github.com/joncalder/dialmap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
