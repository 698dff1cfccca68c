package main

import "github.com/ndelias/ethos/internal/cli"

func main() {
	cli.Execute()
}
