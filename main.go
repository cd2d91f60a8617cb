package main

import "github.com/drgolem/sdptools/cmd"

func main() {
	cmd.Execute()
}
