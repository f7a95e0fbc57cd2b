package main

import "vigi-cli/cmd"

func main() {
	cmd.Execute()
}
