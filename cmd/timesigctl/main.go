package main

import "github.com/equivtech/timesig/cmd/timesigctl/cmd"

func main() {
	cmd.Execute()
}
