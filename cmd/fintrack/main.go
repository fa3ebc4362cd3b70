package main

import "github.com/fintrack/fintrack/cmd/fintrack/cmd"

func main() {
	cmd.Execute()
}
