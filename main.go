package main

import "github.com/rpgo/nestegg/cmd"

func main() {
	cmd.Execute()
}
