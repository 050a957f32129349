package main

import (
	"os"

	"github.com/paw-chain/amm/cmd/ammd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
