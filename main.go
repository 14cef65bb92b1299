package main

import "world-manager/cmd"

func main() {
	cmd.Execute()
}
