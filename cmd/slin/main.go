package main

import (
	"os"

	"github.com/slinlang/slin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
