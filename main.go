package main

import (
	"os"

	"github.com/mkravets/voicehire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
