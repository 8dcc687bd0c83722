package main

import (
	"github.com/mukunda-/mdb-tools/cmd"
)

func main() {
	cmd.Execute()
}
