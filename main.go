package main

import "github.com/SmartGenzAI1/GenzAI/internal/commands"

func main() {
	commands.Execute()
}
