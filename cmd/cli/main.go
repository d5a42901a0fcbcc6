package main

import "winecellar/cmd/cli/command"

func main() {
	command.Execute()
}
