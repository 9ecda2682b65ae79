package main

import (
	"os"

	"github.com/psommers/rolegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
