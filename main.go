package main

import (
	"os"

	"github.com/elnala24/ytapp-project/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
