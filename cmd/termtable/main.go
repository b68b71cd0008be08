package main

import (
	"os"

	"github.com/bjaus/termtable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
