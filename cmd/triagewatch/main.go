package main

import "github.com/ppiankov/triagewatch/internal/cli"

func main() {
	cli.Execute()
}
