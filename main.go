package main

import (
	"os"

	"github.com/mblewuada/texfix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
