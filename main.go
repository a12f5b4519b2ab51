package main

import (
	"os"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/cli"
)

func main() {
	if !cli.Run(os.Args) {
		os.Exit(1)
	}
}
