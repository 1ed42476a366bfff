package main

import "github.com/notargets/goupscale/cmd"

func main() {
	cmd.Execute()
}
