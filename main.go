package main

import "github.com/openquarry/hashquarry/cmd"

func main() {
	cmd.Execute()
}
