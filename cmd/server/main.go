package main

import "github.com/mcoot/rpsmatch-go/internal/cli"

func main() {
	cli.Execute()
}
