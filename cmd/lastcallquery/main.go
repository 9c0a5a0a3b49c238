package main

import (
	"fmt"
	"os"

	"github.com/dcall/lastcall/internal/cli"
)

func main() {
	if err := cli.NewQueryCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
