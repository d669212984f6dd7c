package main

import (
	"os"

	"snek/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
