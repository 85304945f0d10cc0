package main

import (
	"os"

	"github.com/askiada/go-wosh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
