package main

import (
	"os"

	"github.com/Makepad-fr/forget/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
