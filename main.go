package main

import "github.com/cppla/postboard/commands"

func main() {
	commands.Execute()
}
