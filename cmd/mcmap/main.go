// Package main is the entry point of the Minecraft mappings build
// tool.
package main

import (
	"github.com/Techcable/minecraft-mappings/cmd/mcmap/command"
)

func main() {
	command.Execute()
}
