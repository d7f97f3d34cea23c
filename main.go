package main

import (
	"os"

	"github.com/mydpo/mydpo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
