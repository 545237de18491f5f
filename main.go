package main

import "market-signals/internal/cli"

func main() {
	cli.Execute()
}
