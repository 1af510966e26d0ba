package main

import "github.com/zanesterling/mecha-dwarf/cmd"

func main() {
	cmd.Execute()
}
