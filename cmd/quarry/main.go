package main

import "github.com/quarrylabs/quarry/internal/cli"

func main() {
	cli.Execute()
}
