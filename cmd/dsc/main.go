package main

import "github.com/dogeorg/dogescan/cmd/dsc/cmd"

func main() {
	cmd.Execute()
}
