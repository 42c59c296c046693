package main

import "github.com/philipparndt/circlefit/cmd"

func main() {
	cmd.Execute()
}
