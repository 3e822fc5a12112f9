package main

import "github.com/scrublog/scrublog/cmd"

func main() {
	cmd.Execute()
}
