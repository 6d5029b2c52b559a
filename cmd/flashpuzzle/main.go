package main

import "github.com/mcoot/flashpuzzle/internal/cli"

func main() {
	cli.Execute()
}
