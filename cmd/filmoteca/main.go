package main

import (
	"os"

	"github.com/filmoteca/filmoteca/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
