package main

import (
	"os"

	"github.com/solatis/graphfilter/cmd/graphfilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
