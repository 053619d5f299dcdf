package main

import "github.com/agentic-research/annotate/cmd"

func main() {
	cmd.Execute()
}
