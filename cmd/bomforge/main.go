package main

import "github.com/vsinha/bomforge/pkg/interfaces/cli/commands"

func main() {
	commands.Execute()
}
