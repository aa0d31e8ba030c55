package main

import "github.com/lexandro/codestudio-mcp/cmd"

func main() {
	cmd.Execute()
}
