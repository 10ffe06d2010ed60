package main

import (
	"os"

	"github.com/tagmend/tagmend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
