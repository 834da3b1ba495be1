package main

import (
	"os"

	"github.com/nonoumasy/bloodlines/cmd/bloodlines"
)

func main() {
	if err := bloodlines.Execute(); err != nil {
		os.Exit(1)
	}
}
