package main

import "github.com/pfrederiksen/teetimes/internal/cli"

func main() {
	cli.Execute()
}
