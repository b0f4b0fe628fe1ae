package main

import "github.com/getupkeep/upkeep-cli/cmd"

func main() {
	cmd.Execute()
}
