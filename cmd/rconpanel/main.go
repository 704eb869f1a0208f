package main

import "github.com/voidhawk/rconpanel/internal/cli"

func main() {
	cli.Execute()
}
