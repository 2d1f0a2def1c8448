package main

import "buildhub/cmd/cli/command"

func main() {
	command.Execute()
}
