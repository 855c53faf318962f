package main

import "github.com/vybdev/testobjects/cmd"

func main() {
	cmd.Execute()
}
