package main

import "github.com/ragu/kaiwa/internal/commands"

func main() {
	commands.Execute()
}
