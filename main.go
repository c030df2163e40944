package main

import "github.com/Swaminathan-5/midi-maestro/cmd"

func main() {
	cmd.Execute()
}
