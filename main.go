package main

import "github.com/asl-graph/databuilder/cmd"

func main() {
	cmd.Execute()
}
