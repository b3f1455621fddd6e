package main

import "github.com/nfrund/signup/cmd/signup-cli/cmd"

func main() {
	cmd.Execute()
}
