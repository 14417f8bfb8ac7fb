package main

import (
	"os"

	"github.com/tfgkk/schoolcomp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
