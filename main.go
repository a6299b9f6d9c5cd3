package main

import (
	"os"

	"github.com/wandermatch/matchengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
