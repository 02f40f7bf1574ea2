package main

import "github.com/mouse-blink/casecov/cmd"

func main() {
	cmd.Execute()
}
