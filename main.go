package main

import "github.com/FennelBeef/adbpick/cmd"

func main() {
	cmd.Execute()
}
