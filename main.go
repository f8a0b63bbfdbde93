package main

import "deckctl/internal/cli"

func main() {
	cli.Execute()
}
