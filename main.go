package main

import (
	"os"

	"github.com/oarkflow/cikmapper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
