package main

import (
	"os"

	"tsvd/cmd/tsv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
