package main

import (
	"os"

	"github.com/scan-io-git/reportio/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
